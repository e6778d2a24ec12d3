package services

import (
	"context"
	"errors"
	"time"

	"passport-portal/internal/adapters/persistence/models"
	"passport-portal/internal/adapters/persistence/repositories"
	"passport-portal/internal/core/domain"
	"passport-portal/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Block duration bounds in days
const (
	MinBlockDays = 1
	MaxBlockDays = 3
)

// UserService handles account lifecycle business logic
type UserService struct {
	userRepo repositories.UserRepository

	// now is replaceable in tests to drive the block window
	now func() time.Time
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// CreateUserInput represents registration input
type CreateUserInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// CreateUser registers a new account with status ACTIVE
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:          uuid.New().String(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    hashedPassword,
		Role:        domain.RoleUser,
		Status:      domain.UserActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies credentials and enforces the block window.
//
// A user whose block window is still open gets a *domain.BlockedError
// carrying the window end and the reason. A lapsed block is cleared here as
// a side effect of the login attempt: the account flips back to ACTIVE and
// the block fields are reset before the credentials are checked.
func (s *UserService) Authenticate(ctx context.Context, email, plainPassword string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status == domain.UserDeleted {
		return nil, domain.ErrAccountDeleted
	}

	now := s.now()
	if user.Status == domain.UserBlocked {
		if user.IsBlocked(now) {
			return nil, &domain.BlockedError{Until: *user.BlockedUntil, Reason: user.BlockReason}
		}
		// Block window has elapsed: auto-unblock
		user.Status = domain.UserActive
		user.BlockedUntil = nil
		user.BlockReason = ""
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	if !password.Verify(plainPassword, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID gets a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Page  int
	Limit int
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users      []*models.UserResponse `json:"users"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// ListUsers lists all users in insertion order with pagination
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
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

	users, total, err := s.userRepo.List(ctx, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	userResponses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListUsersOutput{
		Users:      userResponses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// SearchUsers matches the query against name, email and phone number.
// An empty query returns all users.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]*models.UserResponse, error) {
	users, err := s.userRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

// BlockUser blocks a user for a bounded number of days
func (s *UserService) BlockUser(ctx context.Context, userID, reason string, durationDays int) error {
	if durationDays < MinBlockDays || durationDays > MaxBlockDays {
		return domain.ErrInvalidBlockDuration
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Status == domain.UserDeleted {
		return domain.ErrAccountDeleted
	}

	blockedUntil := s.now().AddDate(0, 0, durationDays)
	user.Status = domain.UserBlocked
	user.BlockedUntil = &blockedUntil
	user.BlockReason = reason

	return s.userRepo.Update(ctx, user)
}

// UnblockUser clears the block fields and sets the user ACTIVE. It succeeds
// even when the user is not currently blocked.
func (s *UserService) UnblockUser(ctx context.Context, userID string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Status = domain.UserActive
	user.BlockedUntil = nil
	user.BlockReason = ""

	return s.userRepo.Update(ctx, user)
}

// DeleteUser soft-deletes a user: the record is retained with status
// DELETED. Block fields are left as they were.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Status = domain.UserDeleted

	return s.userRepo.Update(ctx, user)
}
