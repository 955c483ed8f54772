package handlers

import (
	"errors"
	"net/http"

	"Dealership/forms"
	"Dealership/middleware"
	"Dealership/repository"
	"Dealership/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetCarFormHandler returns a stored listing as edit form values.
func GetCarFormHandler(c *gin.Context, listings *service.Listings, logger *zap.Logger) {
	form, err := listings.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			respondNotFound(c, "Car not found", "/profile")
			return
		}
		respondError(c, logger, err, "Failed to load car")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    StatusLoaded,
		"form":      form,
		"maxImages": forms.MaxImages,
	})
}

func CreateCarHandler(c *gin.Context, listings *service.Listings, logger *zap.Logger) {
	identity, _ := middleware.Identity(c)

	var form forms.CarForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadBody(c, err)
		return
	}

	car, err := listings.Create(c.Request.Context(), identity.UserID, form)
	if err != nil {
		respondError(c, logger, err, "Failed to create car listing")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   StatusSuccess,
		"message":  "Car listing created successfully",
		"car":      car,
		"redirect": "/profile",
	})
}

func UpdateCarHandler(c *gin.Context, listings *service.Listings, logger *zap.Logger) {
	var form forms.CarForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadBody(c, err)
		return
	}

	car, err := listings.Update(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, "Car not found", "/profile")
			return
		}
		respondError(c, logger, err, "Failed to update car listing")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   StatusSuccess,
		"message":  "Car listing updated successfully",
		"car":      car,
		"redirect": "/profile",
	})
}

func DeleteCarHandler(c *gin.Context, listings *service.Listings, logger *zap.Logger) {
	err := listings.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, "Car not found", "/profile")
			return
		}
		respondError(c, logger, err, "Failed to delete car listing")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  StatusSuccess,
		"message": "Car listing deleted successfully",
	})
}
