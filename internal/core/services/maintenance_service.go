package services

import (
	"context"
	"log"
	"time"

	"passport-portal/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// MaintenanceService runs the nightly housekeeping sweep: lapsed block
// windows are cleared and expired refresh tokens are purged. Lapsed blocks
// are also cleared lazily at login; the sweep just keeps the admin views
// from showing stale BLOCKED rows for accounts that never log in again.
type MaintenanceService struct {
	cron      *cron.Cron
	userRepo  repositories.UserRepository
	tokenRepo repositories.RefreshTokenRepository
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.RefreshTokenRepository,
) *MaintenanceService {
	return &MaintenanceService{
		cron:      cron.New(),
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// Start schedules the nightly sweep (03:30 daily)
func (s *MaintenanceService) Start() {
	s.cron.AddFunc("30 3 * * *", s.RunSweep)
	s.cron.Start()
	log.Println("🚀 MaintenanceService started (daily sweep at 03:30)")
}

// Stop stops the scheduler
func (s *MaintenanceService) Stop() {
	s.cron.Stop()
	log.Println("🛑 MaintenanceService stopped")
}

// RunSweep executes one maintenance pass
func (s *MaintenanceService) RunSweep() {
	ctx := context.Background()

	unblocked, err := s.userRepo.ClearLapsedBlocks(ctx, time.Now())
	if err != nil {
		log.Printf("⚠️ Maintenance: failed to clear lapsed blocks: %v", err)
	} else if unblocked > 0 {
		log.Printf("✅ Maintenance: reactivated %d users with lapsed blocks", unblocked)
	}

	if err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("⚠️ Maintenance: failed to purge expired refresh tokens: %v", err)
	}
}
