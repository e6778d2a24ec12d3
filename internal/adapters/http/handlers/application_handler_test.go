package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitApplication(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.registerUser(t, "thabo@example.com")

	t.Run("success", func(t *testing.T) {
		resp, body := env.request(t, fiber.MethodPost, "/api/v1/applications/", token, applicationBody())
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		app := body["data"].(map[string]interface{})
		assert.Equal(t, "PENDING", app["status"])
		assert.NotEmpty(t, app["id"])
	})

	t.Run("second active application rejected", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPost, "/api/v1/applications/", token, applicationBody())
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPost, "/api/v1/applications/", "", applicationBody())
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing required fields", func(t *testing.T) {
		otherToken, _ := env.registerUser(t, "other@example.com")
		resp, _ := env.request(t, fiber.MethodPost, "/api/v1/applications/", otherToken, fiber.Map{
			"first_name": "Missing",
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestApplicationOwnership(t *testing.T) {
	env := setupTestEnv(t)
	ownerToken, _ := env.registerUser(t, "owner@example.com")
	otherToken, _ := env.registerUser(t, "other@example.com")

	resp, body := env.request(t, fiber.MethodPost, "/api/v1/applications/", ownerToken, applicationBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	appID := body["data"].(map[string]interface{})["id"].(string)

	t.Run("owner can view", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodGet, "/api/v1/applications/"+appID, ownerToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("stranger cannot view", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodGet, "/api/v1/applications/"+appID, otherToken, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("stranger cannot edit", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPut, "/api/v1/applications/"+appID, otherToken, applicationBody())
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner can edit", func(t *testing.T) {
		body := applicationBody()
		body["city"] = "Maun"
		resp, decoded := env.request(t, fiber.MethodPut, "/api/v1/applications/"+appID, ownerToken, body)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Maun", decoded["data"].(map[string]interface{})["city"])
	})

	t.Run("unknown application", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodGet, "/api/v1/applications/missing-id", ownerToken, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestListMyApplications(t *testing.T) {
	env := setupTestEnv(t)
	token, _ := env.registerUser(t, "thabo@example.com")
	otherToken, _ := env.registerUser(t, "other@example.com")

	resp, _ := env.request(t, fiber.MethodPost, "/api/v1/applications/", token, applicationBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := env.request(t, fiber.MethodGet, "/api/v1/applications/", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 1)

	// Another user sees only their own (none)
	resp, body = env.request(t, fiber.MethodGet, "/api/v1/applications/", otherToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"])
}

func TestAdminReview(t *testing.T) {
	env := setupTestEnv(t)
	userToken, _ := env.registerUser(t, "thabo@example.com")
	adminToken := env.registerAdmin(t, "admin@example.com")

	resp, body := env.request(t, fiber.MethodPost, "/api/v1/applications/", userToken, applicationBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	appID := body["data"].(map[string]interface{})["id"].(string)

	t.Run("non-admin cannot review", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPut, "/api/v1/admin/applications/"+appID+"/status", userToken, fiber.Map{
			"status": "APPROVED",
		})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin rejects with feedback", func(t *testing.T) {
		resp, body := env.request(t, fiber.MethodPut, "/api/v1/admin/applications/"+appID+"/status", adminToken, fiber.Map{
			"status":   "REJECTED",
			"feedback": "Photo does not meet requirements",
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		app := body["data"].(map[string]interface{})
		assert.Equal(t, "REJECTED", app["status"])
		assert.Equal(t, "Photo does not meet requirements", app["feedback"])
	})

	t.Run("invalid status", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPut, "/api/v1/admin/applications/"+appID+"/status", adminToken, fiber.Map{
			"status": "ARCHIVED",
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("admin lists with status filter", func(t *testing.T) {
		resp, body := env.request(t, fiber.MethodGet, "/api/v1/admin/applications?status=REJECTED", adminToken, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["total"])
	})

	t.Run("rejection frees the user to resubmit", func(t *testing.T) {
		resp, _ := env.request(t, fiber.MethodPost, "/api/v1/applications/", userToken, applicationBody())
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})
}
