package routes

import (
	"passport-portal/internal/adapters/http/handlers"
	"passport-portal/internal/adapters/http/middleware"
	"passport-portal/internal/adapters/persistence/repositories"
	"passport-portal/internal/config"
	"passport-portal/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers and registers all routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Services
	userService := services.NewUserService(userRepo)
	appService := services.NewApplicationService(appRepo)
	authService := services.NewAuthService(userService, refreshTokenRepo, cfg)
	dashboardService := services.NewDashboardService(appRepo, userRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	appHandler := handlers.NewApplicationHandler(appService)
	userHandler := handlers.NewUserHandler(userService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health endpoints
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api/v1")
	api.Get("/", healthHandler.APIInfo)

	// Auth routes (public, stricter rate limit)
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	// Auth routes (authenticated)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Applicant routes
	apps := api.Group("/applications", middleware.AuthMiddleware(cfg))
	apps.Post("/", appHandler.Submit)
	apps.Get("/", appHandler.ListMine)
	apps.Get("/:id", appHandler.GetByID)
	apps.Put("/:id", appHandler.Update)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	admin.Get("/dashboard", dashboardHandler.GetDashboard)

	admin.Get("/applications", appHandler.ListAll)
	admin.Get("/applications/:id", appHandler.GetByID)
	admin.Put("/applications/:id/status", appHandler.SetStatus)

	admin.Get("/users", userHandler.ListUsers)
	admin.Get("/users/search", userHandler.SearchUsers)
	admin.Get("/users/:id", userHandler.GetUser)
	admin.Post("/users/:id/block", userHandler.BlockUser)
	admin.Post("/users/:id/unblock", userHandler.UnblockUser)
	admin.Delete("/users/:id", userHandler.DeleteUser)
}
