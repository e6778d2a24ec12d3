package services

import (
	"context"

	"passport-portal/internal/adapters/persistence/models"
	"passport-portal/internal/adapters/persistence/repositories"
	"passport-portal/internal/core/domain"
)

// DashboardService aggregates counts for the admin dashboard
type DashboardService struct {
	appRepo  repositories.ApplicationRepository
	userRepo repositories.UserRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	appRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
) *DashboardService {
	return &DashboardService{
		appRepo:  appRepo,
		userRepo: userRepo,
	}
}

// DashboardData represents admin dashboard data
type DashboardData struct {
	// Application statistics
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	ApprovedApplications int64 `json:"approved_applications"`
	RejectedApplications int64 `json:"rejected_applications"`

	// User statistics
	TotalUsers   int64 `json:"total_users"`
	ActiveUsers  int64 `json:"active_users"`
	BlockedUsers int64 `json:"blocked_users"`
	DeletedUsers int64 `json:"deleted_users"`

	// Recent activity
	RecentApplications []*models.Application `json:"recent_applications"`
}

// GetDashboard returns admin dashboard data
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}
	var err error

	if data.TotalApplications, err = s.appRepo.Count(ctx); err != nil {
		return nil, err
	}
	if data.PendingApplications, err = s.appRepo.CountByStatus(ctx, domain.ApplicationPending); err != nil {
		return nil, err
	}
	if data.ApprovedApplications, err = s.appRepo.CountByStatus(ctx, domain.ApplicationApproved); err != nil {
		return nil, err
	}
	if data.RejectedApplications, err = s.appRepo.CountByStatus(ctx, domain.ApplicationRejected); err != nil {
		return nil, err
	}

	if data.ActiveUsers, err = s.userRepo.CountByStatus(ctx, domain.UserActive); err != nil {
		return nil, err
	}
	if data.BlockedUsers, err = s.userRepo.CountByStatus(ctx, domain.UserBlocked); err != nil {
		return nil, err
	}
	if data.DeletedUsers, err = s.userRepo.CountByStatus(ctx, domain.UserDeleted); err != nil {
		return nil, err
	}
	data.TotalUsers = data.ActiveUsers + data.BlockedUsers + data.DeletedUsers

	if data.RecentApplications, err = s.appRepo.ListRecent(ctx, 5); err != nil {
		return nil, err
	}

	return data, nil
}
