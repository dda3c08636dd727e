package router

import (
	"fmt"
	"strings"

	"github.com/jamolstroy/admin-api/internal/cache"
	"github.com/jamolstroy/admin-api/internal/config"
	adminhandlers "github.com/jamolstroy/admin-api/internal/http/handlers/admin"
	authhandlers "github.com/jamolstroy/admin-api/internal/http/handlers/auth"
	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP routing tree.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	authHandler := authhandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "js"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxRequests,
		MessageKey:    "error.login_too_many",
	}
	redisClient := cache.Client()

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login-request", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("client_id")), authHandler.RequestWebsiteLogin)
			auth.GET("/login-status", authHandler.WebsiteLoginStatus)
			auth.POST("/telegram-webapp", RateLimitMiddleware(redisClient, loginRule, KeyByIP), authHandler.TelegramWebAppLogin)
		}

		admin := apiV1.Group("/admin")
		admin.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			admin.GET("/me", adminHandler.GetMe)
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/today", adminHandler.ListTodayOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

			admin.GET("/products", adminHandler.ListProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.PATCH("/products/:id/availability", adminHandler.SetProductAvailability)
			admin.PATCH("/products/:id/featured", adminHandler.SetProductFeatured)

			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
