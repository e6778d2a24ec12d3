package handlers

import (
	"errors"

	"passport-portal/internal/core/domain"
	"passport-portal/internal/core/services"
	"passport-portal/internal/pkg/pagination"
	"passport-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles passport application endpoints
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// Submit creates a new application for the current user
// @Summary Submit a passport application
// @Router /api/v1/applications [post]
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.FirstName == "" || input.LastName == "" || input.NationalID == "" {
		return response.UnprocessableEntity(c, "First name, last name and national ID are required")
	}

	app, err := h.appService.Submit(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrActiveApplicationExists):
			return response.Conflict(c, "You already have an active application")
		default:
			return response.InternalServerError(c, "Failed to submit application")
		}
	}

	return response.Created(c, "Application submitted", app)
}

// Update edits the current user's application
// @Summary Update a passport application
// @Router /api/v1/applications/:id [put]
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id := c.Params("id")

	// Ownership check before touching anything
	existing, err := h.appService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to update application")
	}
	if existing.UserID != userID {
		return response.Forbidden(c, "You can only edit your own application")
	}

	var input services.ApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	app, err := h.appService.Update(c.Context(), id, &input)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to update application")
	}

	return response.Success(c, "Application updated", app)
}

// GetByID returns a single application. Applicants can only see their own;
// admins can see any.
// @Summary Get an application by ID
// @Router /api/v1/applications/:id [get]
func (h *ApplicationHandler) GetByID(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	app, err := h.appService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to get application")
	}

	if app.UserID != userID && domain.Role(role) != domain.RoleAdmin {
		return response.Forbidden(c, "You can only view your own applications")
	}

	return response.Success(c, "Application retrieved", app)
}

// ListMine lists the current user's applications
// @Summary List my applications
// @Router /api/v1/applications [get]
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	apps, err := h.appService.ListForUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved", apps)
}

// ListAll lists all applications with optional status filter (admin)
// @Summary List all applications
// @Router /api/v1/admin/applications [get]
func (h *ApplicationHandler) ListAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	input := &services.ListInput{
		Page:  params.Page,
		Limit: params.Limit,
	}

	if statusQuery := c.Query("status"); statusQuery != "" {
		status := domain.ApplicationStatus(statusQuery)
		if !domain.ValidApplicationStatus(status) {
			return response.BadRequest(c, "Invalid status filter")
		}
		input.Status = &status
	}

	result, err := h.appService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved", result)
}

// SetStatusRequest represents a review decision
type SetStatusRequest struct {
	Status   domain.ApplicationStatus `json:"status"`
	Feedback string                   `json:"feedback"`
}

// SetStatus records a review decision on an application (admin)
// @Summary Approve or reject an application
// @Router /api/v1/admin/applications/:id/status [put]
func (h *ApplicationHandler) SetStatus(c *fiber.Ctx) error {
	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	app, err := h.appService.SetStatus(c.Context(), c.Params("id"), req.Status, req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidApplicationStatus):
			return response.UnprocessableEntity(c, "Status must be PENDING, APPROVED or REJECTED")
		case errors.Is(err, domain.ErrApplicationNotFound):
			return response.NotFound(c, "Application not found")
		default:
			return response.InternalServerError(c, "Failed to update application status")
		}
	}

	return response.Success(c, "Application status updated", app)
}
