package middleware

import (
	"context"
	"strings"

	"Dealership/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*service.Identity, error)
}

// AuthMiddleware resolves the bearer token, when one is sent, into the
// caller's UserID and SessionID. An unusable token is treated as absent.
func AuthMiddleware(auth Authenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if token == "" {
			c.Next()
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("ignoring unusable token", zap.Error(err))
			c.Header("Authorization", "")
			c.Next()
			return
		}

		c.Header("Authorization", authHeader)
		c.Set("Token", token)
		c.Set("UserID", identity.UserID)
		c.Set("SessionID", identity.SessionID)
		c.Next()
	}
}

// Identity returns the caller set by AuthMiddleware.
func Identity(c *gin.Context) (service.Identity, bool) {
	userID := c.GetString("UserID")
	if userID == "" {
		return service.Identity{}, false
	}
	return service.Identity{UserID: userID, SessionID: c.GetString("SessionID")}, true
}
