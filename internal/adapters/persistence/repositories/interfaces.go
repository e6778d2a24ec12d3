package repositories

import (
	"context"
	"time"

	"passport-portal/internal/adapters/persistence/models"
	"passport-portal/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	Search(ctx context.Context, query string) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByStatus(ctx context.Context, status domain.UserStatus) (int64, error)
	ClearLapsedBlocks(ctx context.Context, now time.Time) (int64, error)
}

// ApplicationRepository defines application repository interface
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	ListByUser(ctx context.Context, userID string) ([]*models.Application, error)
	List(ctx context.Context, offset, limit int) ([]*models.Application, int64, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus, offset, limit int) ([]*models.Application, int64, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Application, error)
	HasActiveByUser(ctx context.Context, userID string) (bool, error)
	CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}
