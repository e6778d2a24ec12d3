package models

import (
	"time"

	"passport-portal/internal/core/domain"

	"gorm.io/gorm"
)

// User represents the users table. Deleting a user is a soft delete that
// flips Status to DELETED; the row is retained, so there is no gorm.DeletedAt.
type User struct {
	ID           string            `gorm:"primaryKey;size:36" json:"id"`
	FirstName    string            `gorm:"size:100;not null" json:"first_name"`
	LastName     string            `gorm:"size:100;not null" json:"last_name"`
	Email        string            `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PhoneNumber  string            `gorm:"size:30" json:"phone_number"`
	Password     string            `gorm:"size:255;not null" json:"-"`
	Role         domain.Role       `gorm:"size:20;default:'USER'" json:"role"`
	Status       domain.UserStatus `gorm:"size:20;default:'ACTIVE';index" json:"status"`
	BlockedUntil *time.Time        `json:"blocked_until,omitempty"`
	BlockReason  string            `gorm:"size:255" json:"block_reason,omitempty"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	LastLoginAt  *time.Time        `json:"last_login_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsBlocked reports whether the block window is still open at t
func (u *User) IsBlocked(t time.Time) bool {
	return u.Status == domain.UserBlocked && u.BlockedUntil != nil && u.BlockedUntil.After(t)
}

// UserResponse DTO
type UserResponse struct {
	ID           string            `json:"id"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Email        string            `json:"email"`
	PhoneNumber  string            `json:"phone_number"`
	Role         domain.Role       `json:"role"`
	Status       domain.UserStatus `json:"status"`
	BlockedUntil *time.Time        `json:"blocked_until,omitempty"`
	BlockReason  string            `json:"block_reason,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	LastLoginAt  *time.Time        `json:"last_login_at,omitempty"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		Role:         u.Role,
		Status:       u.Status,
		BlockedUntil: u.BlockedUntil,
		BlockReason:  u.BlockReason,
		CreatedAt:    u.CreatedAt,
		LastLoginAt:  u.LastLoginAt,
	}
}

// Application represents the applications table. Rows are never deleted;
// rejected applications stay behind as history.
//
// CreatedAt/UpdatedAt are managed by the application service so that
// UpdatedAt reflects registry mutations only.
type Application struct {
	ID               string                   `gorm:"primaryKey;size:36" json:"id"`
	UserID           string                   `gorm:"size:36;not null;index" json:"user_id"`
	FirstName        string                   `gorm:"size:100;not null" json:"first_name"`
	LastName         string                   `gorm:"size:100;not null" json:"last_name"`
	DateOfBirth      string                   `gorm:"size:20" json:"date_of_birth"`
	Gender           string                   `gorm:"size:20" json:"gender"`
	NationalID       string                   `gorm:"size:50" json:"national_id"`
	Address          string                   `gorm:"size:255" json:"address"`
	City             string                   `gorm:"size:100" json:"city"`
	PostalCode       string                   `gorm:"size:20" json:"postal_code"`
	EmergencyContact string                   `gorm:"size:100" json:"emergency_contact"`
	EmergencyPhone   string                   `gorm:"size:30" json:"emergency_phone"`
	TravelReason     string                   `gorm:"size:255" json:"travel_reason,omitempty"`
	SelfieImage      string                   `gorm:"type:text" json:"selfie_image"`
	IDFrontImage     string                   `gorm:"type:text" json:"id_front_image"`
	IDBackImage      string                   `gorm:"type:text" json:"id_back_image"`
	Status           domain.ApplicationStatus `gorm:"size:20;default:'PENDING';index" json:"status"`
	Feedback         string                   `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt        time.Time                `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt        time.Time                `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}

// IsActive reports whether the application counts against the
// one-active-application-per-user rule (PENDING and APPROVED both do)
func (a *Application) IsActive() bool {
	return a.Status != domain.ApplicationRejected
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"size:36;index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Application{},
	)
}
