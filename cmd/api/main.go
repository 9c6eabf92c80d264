package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sahilrao/billforge/internal/application/service"
	"github.com/sahilrao/billforge/internal/config"
	"github.com/sahilrao/billforge/internal/infrastructure/database"
	"github.com/sahilrao/billforge/internal/infrastructure/repository"
	"github.com/sahilrao/billforge/internal/presentation/http/handler"
	"github.com/sahilrao/billforge/internal/presentation/http/routes"
	"github.com/sahilrao/billforge/pkg/email"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the business settings row on first run
	if err := database.SeedDefaultSettings(db, cfg); err != nil {
		log.Printf("Warning: Failed to seed default settings: %v", err)
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	itemRepo := repository.NewItemRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)
	estimateItemRepo := repository.NewEstimateItemRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize mailer
	mailer := email.NewMailer()

	// Initialize services
	customerService := service.NewCustomerService(customerRepo)
	itemService := service.NewItemService(itemRepo)
	estimateService := service.NewEstimateService(estimateRepo, estimateItemRepo, customerRepo, settingsRepo, mailer)
	settingsService := service.NewSettingsService(settingsRepo, mailer)
	dashboardService := service.NewDashboardService(estimateRepo, itemRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Customer:  handler.NewCustomerHandler(customerService),
		Item:      handler.NewItemHandler(itemService),
		Estimate:  handler.NewEstimateHandler(estimateService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
