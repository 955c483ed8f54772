package handlers

import (
	"errors"
	"net/http"

	"Dealership/checkout"
	"Dealership/forms"
	"Dealership/repository"
	"Dealership/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Page payload states. idle and loading only exist in the client before a
// response arrives.
const (
	StatusLoaded  = "loaded"
	StatusFailed  = "failed"
	StatusSuccess = "success"
)

// respondError writes the response for errors every handler treats the
// same way. Not-found is left to the caller since the redirect differs per
// page.
func respondError(c *gin.Context, logger *zap.Logger, err error, message string) {
	var validationErr *forms.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  StatusFailed,
			"message": "Please correct the highlighted fields",
			"errors":  validationErr.Fields,
		})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{
			"status":  StatusFailed,
			"message": "An account with this username or email already exists",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  StatusFailed,
			"message": "Invalid email or password",
		})
	case errors.Is(err, checkout.ErrQuoteNotFound):
		c.JSON(http.StatusConflict, gin.H{
			"status":  StatusFailed,
			"message": "Your checkout session expired, please review the order again",
		})
	default:
		logger.Error(message,
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  StatusFailed,
			"message": message,
		})
	}
}

func respondNotFound(c *gin.Context, message, redirect string) {
	c.JSON(http.StatusNotFound, gin.H{
		"status":   StatusFailed,
		"message":  message,
		"redirect": redirect,
	})
}

func respondBadBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  StatusFailed,
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
