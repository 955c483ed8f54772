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

type placeOrderRequest struct {
	forms.OrderForm
	QuoteID string `json:"quoteId"`
}

// GetOrderFormHandler loads the car being bought and the quote the order
// will be billed at.
func GetOrderFormHandler(c *gin.Context, orders *service.Orders, logger *zap.Logger) {
	identity, _ := middleware.Identity(c)

	page, err := orders.LoadForm(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			respondNotFound(c, "Car not found", "/cars")
			return
		}
		respondError(c, logger, err, "Failed to load order form")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  StatusLoaded,
		"car":     page.Car,
		"form":    page.Form,
		"quoteId": page.QuoteID,
	})
}

func PlaceOrderHandler(c *gin.Context, orders *service.Orders, logger *zap.Logger) {
	identity, _ := middleware.Identity(c)
	carID := c.Param("id")

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	order, err := orders.Place(c.Request.Context(), carID, identity.UserID, req.QuoteID, req.OrderForm)
	if err != nil {
		respondError(c, logger, err, "Failed to place order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   StatusSuccess,
		"message":  "Order placed successfully",
		"order":    order,
		"redirect": "/dashboard",
	})
}

// GetOrderDataHandler serves one of the caller's orders with its car.
func GetOrderDataHandler(c *gin.Context, orders *service.Orders, logger *zap.Logger) {
	identity, _ := middleware.Identity(c)

	order, err := orders.Get(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			respondNotFound(c, "Order not found", "/profile")
			return
		}
		respondError(c, logger, err, "Failed to load order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": StatusLoaded,
		"order":  order,
	})
}

// GetOrderListHandler lists the caller's orders, newest first.
func GetOrderListHandler(c *gin.Context, orders *service.Orders, logger *zap.Logger) {
	identity, _ := middleware.Identity(c)

	list, err := orders.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, logger, err, "Failed to load orders")
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": StatusLoaded,
		"orders": list,
	})
}
