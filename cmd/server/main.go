package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"passport-portal/internal/adapters/http/middleware"
	"passport-portal/internal/adapters/http/routes"
	"passport-portal/internal/adapters/persistence/models"
	"passport-portal/internal/adapters/persistence/repositories"
	"passport-portal/internal/config"
	"passport-portal/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("🛑 Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("🛑 Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Run migrations
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("🛑 Failed to run migrations: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Seed initial data
	seeder := config.NewSeeder(db, cfg)
	if err := seeder.Run(); err != nil {
		log.Fatalf("🛑 Failed to seed database: %v", err)
	}

	// Start the nightly maintenance sweep
	maintenance := services.NewMaintenanceService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
	)
	maintenance.Start()
	defer maintenance.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Passport Portal API",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    20 * 1024 * 1024, // base64 document images
	})

	// Setup middlewares and routes
	middleware.Setup(app, cfg)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("🛑 Server failed to start: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
