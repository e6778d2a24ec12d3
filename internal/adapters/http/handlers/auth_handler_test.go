package handlers

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("success sets auth cookies", func(t *testing.T) {
		resp, body := env.request(t, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
			"first_name":   "Thabo",
			"last_name":    "Mokoena",
			"email":        "thabo@example.com",
			"phone_number": "+26771000001",
			"password":     "password123",
		})

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, true, body["success"])

		data := body["data"].(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])

		user := data["user"].(map[string]interface{})
		assert.Equal(t, "USER", user["role"])
		assert.Equal(t, "ACTIVE", user["status"])

		cookieNames := map[string]bool{}
		for _, c := range resp.Cookies() {
			cookieNames[c.Name] = true
		}
		assert.True(t, cookieNames["access_token"])
		assert.True(t, cookieNames["refresh_token"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
			"first_name": "Other",
			"last_name":  "Person",
			"email":      "thabo@example.com",
			"password":   "password456",
		})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("short password", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
			"first_name": "Short",
			"last_name":  "Password",
			"email":      "short@example.com",
			"password":   "short",
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "thabo@example.com")

	t.Run("success", func(t *testing.T) {
		resp, body := env.request(t, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
			"email":    "thabo@example.com",
			"password": "password123",
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
			"email":    "thabo@example.com",
			"password": "wrongpassword",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
			"email":    "nobody@example.com",
			"password": "password123",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLoginBlockedUser(t *testing.T) {
	env := setupTestEnv(t)
	_, userID := env.registerUser(t, "thabo@example.com")

	require.NoError(t, env.userSvc.BlockUser(context.Background(), userID, "document fraud", 2))

	resp, body := env.request(t, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "thabo@example.com",
		"password": "password123",
	})

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "document fraud", body["block_reason"])
	assert.NotEmpty(t, body["blocked_until"])
}

func TestLoginDeletedUser(t *testing.T) {
	env := setupTestEnv(t)
	_, userID := env.registerUser(t, "thabo@example.com")

	require.NoError(t, env.userSvc.DeleteUser(context.Background(), userID))

	resp, _ := env.request(t, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "thabo@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestMe(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.registerUser(t, "thabo@example.com")

	t.Run("with token", func(t *testing.T) {
		resp, body := env.request(t, fiber.MethodGet, "/api/v1/auth/me", token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		user := body["data"].(map[string]interface{})
		assert.Equal(t, "thabo@example.com", user["email"])
	})

	t.Run("without token", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodGet, "/api/v1/auth/me", "not-a-jwt", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRefreshToken(t *testing.T) {
	env := setupTestEnv(t)

	resp, body := env.request(t, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"first_name": "Thabo",
		"last_name":  "Mokoena",
		"email":      "thabo@example.com",
		"password":   "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	refreshToken := body["data"].(map[string]interface{})["refresh_token"].(string)

	t.Run("rotates the token", func(t *testing.T) {
		resp, body := env.request(t, fiber.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{
			"refresh_token": refreshToken,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.NotEmpty(t, data["access_token"])
		assert.NotEqual(t, refreshToken, data["refresh_token"])
	})

	t.Run("old token is revoked after rotation", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{
			"refresh_token": refreshToken,
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing token", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPost, "/api/v1/auth/refresh", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
