package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Dealership/forms"
	"Dealership/middleware"
	"Dealership/repository"
	"Dealership/service"
	"Dealership/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SignUpHandler(c *gin.Context, accounts *service.Accounts, logger *zap.Logger) {
	var form forms.SignUpForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadBody(c, err)
		return
	}

	profile, err := accounts.SignUp(c.Request.Context(), form)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   StatusSuccess,
		"message":  "Account created successfully",
		"user":     profile,
		"redirect": middleware.SignInPath,
	})
}

// SignInHandler returns the session token in the Authorization header.
// localRedirect returns raw when it is a path on this site, fallback
// otherwise. Browsers read "//host" and "/\host" as another origin.
func localRedirect(raw, fallback string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return raw
}

func SignInHandler(c *gin.Context, accounts *service.Accounts, logger *zap.Logger) {
	if _, ok := middleware.Identity(c); ok {
		c.JSON(http.StatusOK, gin.H{
			"status":  StatusSuccess,
			"message": "Already signed in",
		})
		return
	}

	var form forms.SignInForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadBody(c, err)
		return
	}

	result, err := accounts.SignIn(c.Request.Context(), form)
	if err != nil {
		respondError(c, logger, err, "Failed to sign in")
		return
	}

	redirect := localRedirect(c.Query("redirect"), "/dashboard")

	c.Header("Authorization", "Bearer "+result.Token)
	c.JSON(http.StatusOK, gin.H{
		"status":   StatusSuccess,
		"message":  "Signed in successfully",
		"session":  result.Session,
		"user":     result.Profile,
		"redirect": redirect,
	})
}

func SignOutHandler(c *gin.Context, accounts *service.Accounts, logger *zap.Logger) {
	identity, _ := middleware.Identity(c)

	err := accounts.SignOut(c.Request.Context(), identity)
	if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		respondError(c, logger, err, "Failed to sign out")
		return
	}

	c.Header("Authorization", "")
	c.JSON(http.StatusOK, gin.H{
		"status":   StatusSuccess,
		"message":  "Signed out successfully",
		"redirect": "/",
	})
}

// GetSessionHandler reports the current session, or null when signed out.
func GetSessionHandler(c *gin.Context, accounts *service.Accounts, logger *zap.Logger) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}

	current, err := accounts.CurrentSession(c.Request.Context(), identity.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusOK, gin.H{"session": nil})
			return
		}
		respondError(c, logger, err, "Failed to load session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": current})
}

func GetCurrentUserHandler(c *gin.Context, accounts *service.Accounts, logger *zap.Logger) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	profile, err := accounts.CurrentUser(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		respondError(c, logger, err, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// GetUserProfileHandler serves the profile page: the caller's listings and
// orders.
func GetUserProfileHandler(c *gin.Context, accounts *service.Accounts, logger *zap.Logger) {
	identity, _ := middleware.Identity(c)

	page, err := accounts.ProfilePage(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, "Profile not found", middleware.SignInPath)
			return
		}
		respondError(c, logger, err, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  StatusLoaded,
		"profile": page.Profile,
		"cars":    page.Cars,
		"orders":  page.Orders,
	})
}

func GetDashboardHandler(c *gin.Context, accounts *service.Accounts, logger *zap.Logger) {
	identity, _ := middleware.Identity(c)

	dashboard, err := accounts.Dashboard(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondNotFound(c, "Profile not found", middleware.SignInPath)
			return
		}
		respondError(c, logger, err, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  StatusLoaded,
		"profile": dashboard.Profile,
		"stats":   dashboard.Stats,
	})
}

// AuthEventsHandler streams the caller's session changes as server-sent
// events until the client goes away.
func AuthEventsHandler(c *gin.Context, accounts *service.Accounts, logger *zap.Logger) {
	identity, _ := middleware.Identity(c)
	ctx := c.Request.Context()

	sub, err := accounts.SubscribeEvents(ctx, identity.UserID)
	if err != nil {
		respondError(c, logger, err, "Failed to subscribe to auth events")
		return
	}
	defer sub.Close()

	// the server write timeout would otherwise cut long-lived streams
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		logger.Warn("failed to clear write deadline for auth events", zap.Error(err))
	}

	c.Header("Cache-Control", "no-cache")
	c.SSEvent("ready", gin.H{"userId": identity.UserID})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		event, err := sub.Next(ctx)
		if err != nil {
			return false
		}
		c.SSEvent(string(event.Type), event)
		return true
	})
}
