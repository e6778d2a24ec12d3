package handlers

import (
	"errors"

	"passport-portal/internal/core/domain"
	"passport-portal/internal/core/services"
	"passport-portal/internal/pkg/pagination"
	"passport-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles admin user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers lists all users with pagination (admin)
// @Summary List users
// @Router /api/v1/admin/users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	input := &services.ListUsersInput{
		Page:  params.Page,
		Limit: params.Limit,
	}

	result, err := h.userService.ListUsers(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved", result)
}

// SearchUsers searches users by name, email or phone (admin)
// @Summary Search users
// @Router /api/v1/admin/users/search [get]
func (h *UserHandler) SearchUsers(c *fiber.Ctx) error {
	users, err := h.userService.SearchUsers(c.Context(), c.Query("q"))
	if err != nil {
		return response.InternalServerError(c, "Failed to search users")
	}

	return response.Success(c, "Users retrieved", users)
}

// GetUser returns a single user (admin)
// @Summary Get a user by ID
// @Router /api/v1/admin/users/:id [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved", user.ToResponse())
}

// BlockUserRequest represents a block request
type BlockUserRequest struct {
	Reason       string `json:"reason"`
	DurationDays int    `json:"duration_days"`
}

// BlockUser blocks a user for 1 to 3 days (admin)
// @Summary Block a user
// @Router /api/v1/admin/users/:id/block [post]
func (h *UserHandler) BlockUser(c *fiber.Ctx) error {
	var req BlockUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Reason == "" {
		return response.UnprocessableEntity(c, "Block reason is required")
	}

	err := h.userService.BlockUser(c.Context(), c.Params("id"), req.Reason, req.DurationDays)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidBlockDuration):
			return response.UnprocessableEntity(c, "Block duration must be between 1 and 3 days")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrAccountDeleted):
			return response.Conflict(c, "Cannot block a deleted account")
		default:
			return response.InternalServerError(c, "Failed to block user")
		}
	}

	return response.Success(c, "User blocked", nil)
}

// UnblockUser reactivates a user (admin)
// @Summary Unblock a user
// @Router /api/v1/admin/users/:id/unblock [post]
func (h *UserHandler) UnblockUser(c *fiber.Ctx) error {
	err := h.userService.UnblockUser(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to unblock user")
	}

	return response.Success(c, "User unblocked", nil)
}

// DeleteUser soft-deletes a user (admin)
// @Summary Delete a user
// @Router /api/v1/admin/users/:id [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	err := h.userService.DeleteUser(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.Success(c, "User deleted", nil)
}
