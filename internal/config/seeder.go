package config

import (
	"log"
	"time"

	"passport-portal/internal/adapters/persistence/models"
	"passport-portal/internal/core/domain"
	"passport-portal/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if s.cfg.SeedDemo {
		if err := s.seedDemoData(); err != nil {
			log.Printf("⚠️ Demo seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default reviewer account.
// This is for development/testing only; in production, create the admin
// through a secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:        uuid.New().String(),
		FirstName: "Portal",
		LastName:  "Admin",
		Email:     "admin@passport.gov.example",
		Password:  hashedPassword,
		Role:      domain.RoleAdmin,
		Status:    domain.UserActive,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedDemoData seeds a handful of applicant accounts and applications so the
// dashboards have something to show in development.
func (s *Seeder) seedDemoData() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleUser).Count(&count)
	if count > 0 {
		return nil // Demo data already present
	}

	hashedPassword, err := password.Hash("password123")
	if err != nil {
		return err
	}

	now := time.Now()
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }

	demoUsers := []*models.User{
		{
			ID:          uuid.New().String(),
			FirstName:   "John",
			LastName:    "Doe",
			Email:       "john.doe@example.com",
			PhoneNumber: "+267 71234567",
			Password:    hashedPassword,
			Role:        domain.RoleUser,
			Status:      domain.UserActive,
			CreatedAt:   daysAgo(30),
		},
		{
			ID:          uuid.New().String(),
			FirstName:   "Alice",
			LastName:    "Smith",
			Email:       "alice.smith@example.com",
			PhoneNumber: "+267 72345678",
			Password:    hashedPassword,
			Role:        domain.RoleUser,
			Status:      domain.UserActive,
			CreatedAt:   daysAgo(45),
		},
		{
			ID:          uuid.New().String(),
			FirstName:   "Michael",
			LastName:    "Johnson",
			Email:       "michael.johnson@example.com",
			PhoneNumber: "+267 73456789",
			Password:    hashedPassword,
			Role:        domain.RoleUser,
			Status:      domain.UserActive,
			CreatedAt:   daysAgo(15),
		},
	}

	for _, u := range demoUsers {
		if err := s.db.Create(u).Error; err != nil {
			return err
		}
	}

	demoApps := []*models.Application{
		{
			ID:               uuid.New().String(),
			UserID:           demoUsers[0].ID,
			FirstName:        "John",
			LastName:         "Doe",
			DateOfBirth:      "1990-01-01",
			Gender:           "male",
			NationalID:       "12345678",
			Address:          "123 Main St",
			City:             "Gaborone",
			PostalCode:       "00000",
			EmergencyContact: "Jane Doe",
			EmergencyPhone:   "+267 71234567",
			TravelReason:     "Tourism",
			Status:           domain.ApplicationPending,
			CreatedAt:        daysAgo(2),
			UpdatedAt:        daysAgo(2),
		},
		{
			ID:               uuid.New().String(),
			UserID:           demoUsers[1].ID,
			FirstName:        "Alice",
			LastName:         "Smith",
			DateOfBirth:      "1985-05-15",
			Gender:           "female",
			NationalID:       "87654321",
			Address:          "456 Oak St",
			City:             "Francistown",
			PostalCode:       "00000",
			EmergencyContact: "Bob Smith",
			EmergencyPhone:   "+267 72345678",
			TravelReason:     "Business",
			Status:           domain.ApplicationApproved,
			Feedback:         "All documents verified successfully.",
			CreatedAt:        daysAgo(7),
			UpdatedAt:        daysAgo(3),
		},
		{
			ID:               uuid.New().String(),
			UserID:           demoUsers[2].ID,
			FirstName:        "Michael",
			LastName:         "Johnson",
			DateOfBirth:      "1978-11-30",
			Gender:           "male",
			NationalID:       "23456789",
			Address:          "789 Pine St",
			City:             "Maun",
			PostalCode:       "00000",
			EmergencyContact: "Sarah Johnson",
			EmergencyPhone:   "+267 73456789",
			TravelReason:     "Family visit",
			Status:           domain.ApplicationRejected,
			Feedback:         "National ID verification failed. Please submit a clearer copy of your ID.",
			CreatedAt:        daysAgo(14),
			UpdatedAt:        daysAgo(10),
		},
	}

	for _, a := range demoApps {
		if err := s.db.Create(a).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Demo data created: %d users, %d applications", len(demoUsers), len(demoApps))
	return nil
}
