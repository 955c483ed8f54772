package routers

import (
	"net/http"
	"time"

	"Dealership/handlers"
	"Dealership/middleware"
	"Dealership/service"
	"Dealership/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Dependencies struct {
	Catalog  *service.Catalog
	Listings *service.Listings
	Orders   *service.Orders
	TradeIns *service.TradeIns
	Accounts *service.Accounts
	Storage  storage.Client

	// StaticDir is served at /uploads when images are stored locally.
	StaticDir      string
	AllowedOrigins []string
	SlowRequest    time.Duration
	Logger         *zap.Logger
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	}
}

func SetupRouters(deps Dependencies) *gin.Engine {
	logger := deps.Logger

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger, deps.SlowRequest), corsMiddleware(deps.AllowedOrigins))
	if err := router.SetTrustedProxies(nil); err != nil {
		logger.Warn("failed to reset trusted proxies", zap.Error(err))
	}

	if deps.StaticDir != "" {
		router.Static("/uploads", deps.StaticDir)
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	//public routes; the auth middleware only identifies the caller
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(deps.Accounts, logger))
	{
		api.GET("/cars", func(c *gin.Context) {
			handlers.GetCarListHandler(c, deps.Catalog, logger)
		})
		api.GET("/cars/featured", func(c *gin.Context) {
			handlers.GetFeaturedCarsHandler(c, deps.Catalog, logger)
		})
		api.GET("/cars/:id", func(c *gin.Context) {
			handlers.GetCarDataHandler(c, deps.Catalog, logger)
		})
		api.GET("/cars/:id/trade-in", func(c *gin.Context) {
			handlers.GetTradeInFormHandler(c, deps.Catalog, logger)
		})
		api.POST("/auth/sign-up", func(c *gin.Context) {
			handlers.SignUpHandler(c, deps.Accounts, logger)
		})
		api.POST("/auth/sign-in", func(c *gin.Context) {
			handlers.SignInHandler(c, deps.Accounts, logger)
		})
		api.GET("/auth/session", func(c *gin.Context) {
			handlers.GetSessionHandler(c, deps.Accounts, logger)
		})
		api.GET("/auth/user", func(c *gin.Context) {
			handlers.GetCurrentUserHandler(c, deps.Accounts, logger)
		})

		//signed-in routes; each names the page to return to after sign-in
		api.GET("/cars/:id/order", middleware.CheckLoginMiddleware("/cars/:id/order"), func(c *gin.Context) {
			handlers.GetOrderFormHandler(c, deps.Orders, logger)
		})
		api.POST("/cars/:id/orders", middleware.CheckLoginMiddleware("/cars/:id/order"), func(c *gin.Context) {
			handlers.PlaceOrderHandler(c, deps.Orders, logger)
		})
		api.POST("/cars/:id/trade-ins", middleware.CheckLoginMiddleware("/cars/:id/trade-in"), func(c *gin.Context) {
			handlers.SubmitTradeInHandler(c, deps.TradeIns, logger)
		})
		api.GET("/orders", middleware.CheckLoginMiddleware("/profile"), func(c *gin.Context) {
			handlers.GetOrderListHandler(c, deps.Orders, logger)
		})
		api.GET("/trade-ins", middleware.CheckLoginMiddleware("/profile"), func(c *gin.Context) {
			handlers.GetTradeInListHandler(c, deps.TradeIns, logger)
		})
		api.GET("/orders/:id", middleware.CheckLoginMiddleware("/orders/:id"), func(c *gin.Context) {
			handlers.GetOrderDataHandler(c, deps.Orders, logger)
		})
		api.GET("/profile", middleware.CheckLoginMiddleware("/profile"), func(c *gin.Context) {
			handlers.GetUserProfileHandler(c, deps.Accounts, logger)
		})
		api.GET("/dashboard", middleware.CheckLoginMiddleware("/dashboard"), func(c *gin.Context) {
			handlers.GetDashboardHandler(c, deps.Accounts, logger)
		})
		api.POST("/auth/sign-out", middleware.CheckLoginMiddleware("/"), func(c *gin.Context) {
			handlers.SignOutHandler(c, deps.Accounts, logger)
		})
		api.GET("/auth/events", middleware.CheckLoginMiddleware("/"), func(c *gin.Context) {
			handlers.AuthEventsHandler(c, deps.Accounts, logger)
		})
		api.POST("/uploads/:bucket", middleware.CheckLoginMiddleware("/cars/manage/new"), func(c *gin.Context) {
			handlers.UploadImageHandler(c, deps.Storage, logger)
		})

		//listing management
		manage := api.Group("/manage")
		{
			manage.POST("/cars", middleware.CheckLoginMiddleware("/cars/manage/new"), func(c *gin.Context) {
				handlers.CreateCarHandler(c, deps.Listings, logger)
			})
			manage.GET("/cars/:id", middleware.CheckLoginMiddleware("/cars/manage/:id"), func(c *gin.Context) {
				handlers.GetCarFormHandler(c, deps.Listings, logger)
			})
			manage.PUT("/cars/:id", middleware.CheckLoginMiddleware("/cars/manage/:id"), func(c *gin.Context) {
				handlers.UpdateCarHandler(c, deps.Listings, logger)
			})
			manage.DELETE("/cars/:id", middleware.CheckLoginMiddleware("/profile"), func(c *gin.Context) {
				handlers.DeleteCarHandler(c, deps.Listings, logger)
			})
		}
	}

	return router
}
