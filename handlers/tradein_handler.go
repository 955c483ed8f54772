package handlers

import (
	"errors"
	"net/http"

	"Dealership/forms"
	"Dealership/middleware"
	"Dealership/models"
	"Dealership/repository"
	"Dealership/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func GetTradeInFormHandler(c *gin.Context, catalog *service.Catalog, logger *zap.Logger) {
	detail, err := catalog.GetCar(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			respondNotFound(c, "Car not found", "/cars")
			return
		}
		respondError(c, logger, err, "Failed to load trade-in form")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     StatusLoaded,
		"car":        detail.Car,
		"form":       forms.NewTradeInForm(),
		"conditions": forms.TradeInConditions,
		"maxImages":  forms.MaxImages,
	})
}

func SubmitTradeInHandler(c *gin.Context, tradeIns *service.TradeIns, logger *zap.Logger) {
	identity, _ := middleware.Identity(c)
	carID := c.Param("id")

	var form forms.TradeInForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadBody(c, err)
		return
	}

	tradeIn, err := tradeIns.Submit(c.Request.Context(), carID, identity.UserID, form)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			respondNotFound(c, "Car not found", "/cars")
			return
		}
		respondError(c, logger, err, "Failed to submit trade-in request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   StatusSuccess,
		"message":  "Trade-in request submitted successfully",
		"tradeIn":  tradeIn,
		"redirect": "/cars/" + carID,
	})
}

// GetTradeInListHandler lists the caller's trade-in requests.
func GetTradeInListHandler(c *gin.Context, tradeIns *service.TradeIns, logger *zap.Logger) {
	identity, _ := middleware.Identity(c)

	list, err := tradeIns.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, logger, err, "Failed to load trade-in requests")
		return
	}
	if list == nil {
		list = []models.TradeIn{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   StatusLoaded,
		"tradeIns": list,
	})
}
