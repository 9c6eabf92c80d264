package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/sahilrao/billforge/internal/config"
	"github.com/sahilrao/billforge/internal/domain/entity"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database. SQLite is the default local store;
// postgres serves the hosted deployment.
func Connect(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch cfg.Driver {
	case "postgres":
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)

		log.Println("Successfully connected to PostgreSQL database")
		return db, nil

	case "sqlite", "":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}

		db, err := gorm.Open(sqlite.Open(cfg.Path), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}

		// Single writer; SQLite serializes writes anyway.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)

		log.Printf("Successfully opened SQLite database at %s", cfg.Path)
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.Customer{},
		&entity.Item{},
		&entity.Estimate{},
		&entity.EstimateItem{},
		&entity.BusinessSettings{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultSettings creates the single business_settings row on first run.
// Subsequent runs leave the existing row untouched.
func SeedDefaultSettings(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&entity.BusinessSettings{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check business settings: %w", err)
	}
	if count > 0 {
		return nil
	}

	settings := &entity.BusinessSettings{
		BusinessName:    cfg.Business.Name,
		EstimatePrefix:  cfg.Business.EstimatePrefix,
		EstimateCounter: 1,
		CurrencySymbol:  cfg.Business.CurrencySymbol,
		DefaultTaxRate:  decimal.NewFromFloat(cfg.Business.DefaultTaxRate),
		SMTPPort:        cfg.Email.SMTPPort,
	}
	if cfg.Email.SMTPHost != "" {
		settings.SMTPServer = &cfg.Email.SMTPHost
	}
	if cfg.Email.SMTPUsername != "" {
		settings.SMTPUsername = &cfg.Email.SMTPUsername
	}
	if cfg.Email.SMTPPassword != "" {
		settings.SMTPPassword = &cfg.Email.SMTPPassword
	}

	if err := db.Create(settings).Error; err != nil {
		return fmt.Errorf("failed to seed business settings: %w", err)
	}

	log.Println("Seeded default business settings")
	return nil
}
