package repositories

import (
	"context"

	"passport-portal/internal/adapters/persistence/models"
	"passport-portal/internal/core/domain"

	"gorm.io/gorm"
)

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create creates a new application
func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID gets an application by ID
func (r *applicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Update saves an application
func (r *applicationRepository) Update(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// ListByUser lists a user's applications in insertion order
func (r *applicationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// List lists applications in insertion order with pagination
func (r *applicationRepository) List(ctx context.Context, offset, limit int) ([]*models.Application, int64, error) {
	var apps []*models.Application
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Application{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// ListByStatus lists applications with a given status with pagination
func (r *applicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus, offset, limit int) ([]*models.Application, int64, error) {
	var apps []*models.Application
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("status = ?", status).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// ListRecent lists the most recently submitted applications
func (r *applicationRepository) ListRecent(ctx context.Context, limit int) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// HasActiveByUser reports whether the user has any non-rejected application
func (r *applicationRepository) HasActiveByUser(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("user_id = ? AND status <> ?", userID, domain.ApplicationRejected).
		Count(&count).Error
	return count > 0, err
}

// CountByStatus counts applications with a given status
func (r *applicationRepository) CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// Count counts all applications
func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).Count(&count).Error
	return count, err
}
