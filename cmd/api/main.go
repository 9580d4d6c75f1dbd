package main

import (
	"fmt"
	"os"

	"homebook/internal/config"
	"homebook/internal/database"
	"homebook/internal/dates"
	"homebook/internal/logger"
	"homebook/internal/router"
	"homebook/internal/validator"
)

// @title           Home Book API
// @version         1.0
// @description     Home Book is a household bookkeeping service: one account per user, income and expense transactions, planned transactions and period statistics.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	dates.SetLocation(appConfig.Location)
	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := database.EnsureDefaults(dbManager.DB()); err != nil {
		return err
	}

	engine := router.New(dbManager.DB(), appConfig)

	log.Infof("Starting Home Book server on port %s (calendar %s)", appConfig.Port, appConfig.Location)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return engine.Run(":" + appConfig.Port)
}
