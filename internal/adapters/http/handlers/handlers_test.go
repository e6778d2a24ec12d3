package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"passport-portal/internal/adapters/http/middleware"
	"passport-portal/internal/adapters/persistence/models"
	"passport-portal/internal/adapters/persistence/repositories"
	"passport-portal/internal/config"
	"passport-portal/internal/core/domain"
	"passport-portal/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires an in-memory database behind the real handlers. The auth rate
// limiter is left out so tests can log in as often as they like.
type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	cfg     *config.Config
	userSvc *services.UserService
	appSvc  *services.ApplicationService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Cookie: config.CookieConfig{SameSite: "lax"},
	}

	userRepo := repositories.NewUserRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	userSvc := services.NewUserService(userRepo)
	appSvc := services.NewApplicationService(appRepo)
	authSvc := services.NewAuthService(userSvc, refreshTokenRepo, cfg)
	dashboardSvc := services.NewDashboardService(appRepo, userRepo)

	authHandler := NewAuthHandler(authSvc, cfg)
	appHandler := NewApplicationHandler(appSvc)
	userHandler := NewUserHandler(userSvc)
	dashboardHandler := NewDashboardHandler(dashboardSvc)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	apps := api.Group("/applications", middleware.AuthMiddleware(cfg))
	apps.Post("/", appHandler.Submit)
	apps.Get("/", appHandler.ListMine)
	apps.Get("/:id", appHandler.GetByID)
	apps.Put("/:id", appHandler.Update)

	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	admin.Get("/dashboard", dashboardHandler.GetDashboard)
	admin.Get("/applications", appHandler.ListAll)
	admin.Put("/applications/:id/status", appHandler.SetStatus)
	admin.Get("/users", userHandler.ListUsers)
	admin.Get("/users/search", userHandler.SearchUsers)
	admin.Post("/users/:id/block", userHandler.BlockUser)
	admin.Post("/users/:id/unblock", userHandler.UnblockUser)
	admin.Delete("/users/:id", userHandler.DeleteUser)

	return &testEnv{
		app:     app,
		db:      db,
		cfg:     cfg,
		userSvc: userSvc,
		appSvc:  appSvc,
	}
}

// request performs a JSON request against the test app and decodes the body
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return resp, decoded
}

// registerUser registers a user over HTTP and returns their access token and ID
func (e *testEnv) registerUser(t *testing.T, email string) (token, userID string) {
	t.Helper()

	resp, body := e.request(t, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"first_name":   "Thabo",
		"last_name":    "Mokoena",
		"email":        email,
		"phone_number": "+26771000001",
		"password":     "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	token = data["access_token"].(string)
	userID = data["user"].(map[string]interface{})["id"].(string)
	return token, userID
}

// registerAdmin registers a user, promotes them to ADMIN directly in the
// database, and logs in again so the token carries the admin role
func (e *testEnv) registerAdmin(t *testing.T, email string) string {
	t.Helper()

	_, userID := e.registerUser(t, email)
	require.NoError(t, e.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", domain.RoleAdmin).Error)

	resp, body := e.request(t, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	return body["data"].(map[string]interface{})["access_token"].(string)
}

func applicationBody() fiber.Map {
	return fiber.Map{
		"first_name":        "Thabo",
		"last_name":         "Mokoena",
		"date_of_birth":     "1990-04-15",
		"gender":            "male",
		"national_id":       "900415001",
		"address":           "Plot 1234, Extension 9",
		"city":              "Gaborone",
		"postal_code":       "00000",
		"emergency_contact": "Naledi Mokoena",
		"emergency_phone":   "+26771000002",
		"travel_reason":     "Business travel",
		"selfie_image":      "selfie-v1",
		"id_front_image":    "front-v1",
		"id_back_image":     "back-v1",
	}
}
