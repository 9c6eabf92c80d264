package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sahilrao/billforge/internal/config"
	"github.com/sahilrao/billforge/internal/presentation/http/handler"
	"github.com/sahilrao/billforge/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Customer  *handler.CustomerHandler
	Item      *handler.ItemHandler
	Estimate  *handler.EstimateHandler
	Settings  *handler.SettingsHandler
	Dashboard *handler.DashboardHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
			BurstSize:         cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerCustomerRoutes(v1, h)
		registerItemRoutes(v1, h)
		registerEstimateRoutes(v1, h)

		// Settings
		v1.GET("/settings", h.Settings.Get)
		v1.PUT("/settings", h.Settings.Update)
		v1.POST("/settings/email/test", h.Settings.TestEmail)

		// Dashboard
		v1.GET("/dashboard", h.Dashboard.Get)
	}

	return router
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerItemRoutes(v1 *gin.RouterGroup, h *Handlers) {
	items := v1.Group("/items")
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/low-stock", h.Item.LowStock)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", h.Item.Delete)
	}
}

func registerEstimateRoutes(v1 *gin.RouterGroup, h *Handlers) {
	estimates := v1.Group("/estimates")
	{
		estimates.GET("", h.Estimate.List)
		estimates.POST("", h.Estimate.Create)
		estimates.GET("/:id", h.Estimate.Get)
		estimates.PUT("/:id", h.Estimate.Update)
		estimates.DELETE("/:id", h.Estimate.Delete)
		estimates.PATCH("/:id/status", h.Estimate.UpdateStatus)
		estimates.GET("/:id/pdf", h.Estimate.DownloadPDF)
		estimates.POST("/:id/send", h.Estimate.Send)
	}
}
