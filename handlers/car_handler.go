package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"Dealership/forms"
	"Dealership/models"
	"Dealership/repository"
	"Dealership/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// parseCarFilter reads the catalog query. Absent and empty parameters
// contribute nothing; a malformed price is a validation error.
func parseCarFilter(c *gin.Context) (repository.CarFilter, error) {
	var filter repository.CarFilter
	fields := map[string]string{}

	filter.Make = queryString(c, "make")
	filter.BodyType = queryString(c, "bodyType")
	filter.FuelType = queryString(c, "fuelType")
	filter.Transmission = queryString(c, "transmission")

	for _, key := range []string{"minPrice", "maxPrice"} {
		raw := queryString(c, key)
		if raw == nil {
			continue
		}
		value, err := strconv.ParseFloat(*raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || strings.ContainsAny(*raw, "xX") {
			fields[key] = "Must be a number"
			continue
		}
		if key == "minPrice" {
			filter.MinPrice = &value
		} else {
			filter.MaxPrice = &value
		}
	}

	if len(fields) > 0 {
		return filter, &forms.ValidationError{Fields: fields}
	}
	return filter, nil
}

func queryString(c *gin.Context, key string) *string {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil
	}
	return &value
}

// GetCarListHandler serves the filtered catalog.
func GetCarListHandler(c *gin.Context, catalog *service.Catalog, logger *zap.Logger) {
	filter, err := parseCarFilter(c)
	if err != nil {
		respondError(c, logger, err, "Invalid filters")
		return
	}

	cars, err := catalog.ListCars(c.Request.Context(), filter)
	if err != nil {
		logger.Error("failed to load cars", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  StatusFailed,
			"message": "Failed to load cars",
			"cars":    []models.Car{},
		})
		return
	}
	if cars == nil {
		cars = []models.Car{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": StatusLoaded,
		"cars":   cars,
	})
}

func GetFeaturedCarsHandler(c *gin.Context, catalog *service.Catalog, logger *zap.Logger) {
	cars, err := catalog.FeaturedCars(c.Request.Context())
	if err != nil {
		logger.Error("failed to load featured cars", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  StatusFailed,
			"message": "Failed to load cars",
			"cars":    []models.Car{},
		})
		return
	}
	if cars == nil {
		cars = []models.Car{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": StatusLoaded,
		"cars":   cars,
	})
}

// GetCarDataHandler serves one listing with up to three similar ones.
func GetCarDataHandler(c *gin.Context, catalog *service.Catalog, logger *zap.Logger) {
	detail, err := catalog.GetCar(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			respondNotFound(c, "Car not found", "/cars")
			return
		}
		respondError(c, logger, err, "Failed to load car details")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      StatusLoaded,
		"car":         detail.Car,
		"gallery":     detail.Car.Gallery(),
		"similarCars": detail.Similar,
	})
}
