package services

import (
	"context"
	"errors"
	"time"

	"passport-portal/internal/adapters/persistence/models"
	"passport-portal/internal/adapters/persistence/repositories"
	"passport-portal/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationService handles passport application business logic
type ApplicationService struct {
	appRepo repositories.ApplicationRepository

	// now is replaceable in tests
	now func() time.Time
}

// NewApplicationService creates a new application service
func NewApplicationService(appRepo repositories.ApplicationRepository) *ApplicationService {
	return &ApplicationService{
		appRepo: appRepo,
		now:     time.Now,
	}
}

// ApplicationInput carries the applicant-editable fields of an application.
// The three image payloads are opaque strings; the service never looks
// inside them.
type ApplicationInput struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	DateOfBirth      string `json:"date_of_birth"`
	Gender           string `json:"gender"`
	NationalID       string `json:"national_id"`
	Address          string `json:"address"`
	City             string `json:"city"`
	PostalCode       string `json:"postal_code"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
	TravelReason     string `json:"travel_reason"`
	SelfieImage      string `json:"selfie_image"`
	IDFrontImage     string `json:"id_front_image"`
	IDBackImage      string `json:"id_back_image"`
}

// HasActiveApplication reports whether the user has any application that is
// not REJECTED (PENDING and APPROVED both count)
func (s *ApplicationService) HasActiveApplication(ctx context.Context, userID string) (bool, error) {
	return s.appRepo.HasActiveByUser(ctx, userID)
}

// Submit creates a new PENDING application. Only one active application per
// user is allowed; prior REJECTED applications do not count.
func (s *ApplicationService) Submit(ctx context.Context, userID string, input *ApplicationInput) (*models.Application, error) {
	hasActive, err := s.appRepo.HasActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if hasActive {
		return nil, domain.ErrActiveApplicationExists
	}

	now := s.now()
	app := &models.Application{
		ID:               uuid.New().String(),
		UserID:           userID,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		DateOfBirth:      input.DateOfBirth,
		Gender:           input.Gender,
		NationalID:       input.NationalID,
		Address:          input.Address,
		City:             input.City,
		PostalCode:       input.PostalCode,
		EmergencyContact: input.EmergencyContact,
		EmergencyPhone:   input.EmergencyPhone,
		TravelReason:     input.TravelReason,
		SelfieImage:      input.SelfieImage,
		IDFrontImage:     input.IDFrontImage,
		IDBackImage:      input.IDBackImage,
		Status:           domain.ApplicationPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// Update overwrites the applicant-editable fields of an application. Image
// fields keep their previous value when the new value is empty, so the
// applicant does not have to recapture documents on every edit.
//
// Editing a REJECTED application resurrects it to PENDING; this is the
// resubmission path. Feedback from the rejection is kept for reference.
func (s *ApplicationService) Update(ctx context.Context, id string, input *ApplicationInput) (*models.Application, error) {
	app, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	app.FirstName = input.FirstName
	app.LastName = input.LastName
	app.DateOfBirth = input.DateOfBirth
	app.Gender = input.Gender
	app.NationalID = input.NationalID
	app.Address = input.Address
	app.City = input.City
	app.PostalCode = input.PostalCode
	app.EmergencyContact = input.EmergencyContact
	app.EmergencyPhone = input.EmergencyPhone
	app.TravelReason = input.TravelReason

	if input.SelfieImage != "" {
		app.SelfieImage = input.SelfieImage
	}
	if input.IDFrontImage != "" {
		app.IDFrontImage = input.IDFrontImage
	}
	if input.IDBackImage != "" {
		app.IDBackImage = input.IDBackImage
	}

	if app.Status == domain.ApplicationRejected {
		app.Status = domain.ApplicationPending
	}

	app.UpdatedAt = s.now()

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// GetByID gets an application by ID
func (s *ApplicationService) GetByID(ctx context.Context, id string) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

// ListForUser lists a user's applications in insertion order
func (s *ApplicationService) ListForUser(ctx context.Context, userID string) ([]*models.Application, error) {
	return s.appRepo.ListByUser(ctx, userID)
}

// ListInput represents list input
type ListInput struct {
	Page   int
	Limit  int
	Status *domain.ApplicationStatus
}

// ListOutput represents list output
type ListOutput struct {
	Applications []*models.Application `json:"applications"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

// List lists applications in insertion order, optionally filtered by status
func (s *ApplicationService) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit
	var apps []*models.Application
	var total int64
	var err error

	if input.Status != nil {
		apps, total, err = s.appRepo.ListByStatus(ctx, *input.Status, offset, input.Limit)
	} else {
		apps, total, err = s.appRepo.List(ctx, offset, input.Limit)
	}
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListOutput{
		Applications: apps,
		Total:        total,
		Page:         input.Page,
		Limit:        input.Limit,
		TotalPages:   totalPages,
	}, nil
}

// SetStatus records a review decision. Any known status may be set from any
// other so reviewers can correct earlier decisions. Empty feedback keeps the
// previous feedback.
func (s *ApplicationService) SetStatus(ctx context.Context, id string, status domain.ApplicationStatus, feedback string) (*models.Application, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, domain.ErrInvalidApplicationStatus
	}

	app, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	app.Status = status
	if feedback != "" {
		app.Feedback = feedback
	}
	app.UpdatedAt = s.now()

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}
