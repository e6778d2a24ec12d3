package services

import (
	"context"
	"testing"
	"time"

	"passport-portal/internal/adapters/persistence/repositories"
	"passport-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApplicationService(t *testing.T) (*ApplicationService, *time.Time) {
	t.Helper()

	db := setupTestDB(t)
	svc := NewApplicationService(repositories.NewApplicationRepository(db))

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return svc, &now
}

func testApplicationInput() *ApplicationInput {
	return &ApplicationInput{
		FirstName:        "Thabo",
		LastName:         "Mokoena",
		DateOfBirth:      "1990-04-15",
		Gender:           "male",
		NationalID:       "900415001",
		Address:          "Plot 1234, Extension 9",
		City:             "Gaborone",
		PostalCode:       "00000",
		EmergencyContact: "Naledi Mokoena",
		EmergencyPhone:   "+26771000002",
		TravelReason:     "Business travel",
		SelfieImage:      "selfie-v1",
		IDFrontImage:     "front-v1",
		IDBackImage:      "back-v1",
	}
}

func TestSubmitApplication(t *testing.T) {
	svc, now := setupApplicationService(t)
	ctx := context.Background()

	app, err := svc.Submit(ctx, "user-1", testApplicationInput())
	require.NoError(t, err)

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, "user-1", app.UserID)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.Empty(t, app.Feedback)
	assert.True(t, app.CreatedAt.Equal(*now))
	assert.True(t, app.UpdatedAt.Equal(*now))
}

func TestOneActiveApplicationPerUser(t *testing.T) {
	svc, _ := setupApplicationService(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, "user-1", testApplicationInput())
	require.NoError(t, err)

	// A second submission is rejected while the first is PENDING
	_, err = svc.Submit(ctx, "user-1", testApplicationInput())
	assert.ErrorIs(t, err, domain.ErrActiveApplicationExists)

	// APPROVED still counts as active
	_, err = svc.SetStatus(ctx, first.ID, domain.ApplicationApproved, "")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "user-1", testApplicationInput())
	assert.ErrorIs(t, err, domain.ErrActiveApplicationExists)

	// A different user is unaffected
	_, err = svc.Submit(ctx, "user-2", testApplicationInput())
	assert.NoError(t, err)
}

func TestSubmitAfterRejection(t *testing.T) {
	svc, _ := setupApplicationService(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, "user-1", testApplicationInput())
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, first.ID, domain.ApplicationRejected, "Photo does not meet requirements")
	require.NoError(t, err)

	// A rejected application no longer blocks a fresh submission
	second, err := svc.Submit(ctx, "user-1", testApplicationInput())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// The rejected one stays behind as history
	apps, err := svc.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}

func TestUpdateApplication(t *testing.T) {
	svc, now := setupApplicationService(t)
	ctx := context.Background()

	app, err := svc.Submit(ctx, "user-1", testApplicationInput())
	require.NoError(t, err)

	*now = now.Add(time.Hour)

	input := testApplicationInput()
	input.City = "Francistown"
	input.SelfieImage = "selfie-v2"
	input.IDFrontImage = "" // keep previous
	input.IDBackImage = ""  // keep previous

	updated, err := svc.Update(ctx, app.ID, input)
	require.NoError(t, err)

	assert.Equal(t, "Francistown", updated.City)
	assert.Equal(t, "selfie-v2", updated.SelfieImage)
	assert.Equal(t, "front-v1", updated.IDFrontImage)
	assert.Equal(t, "back-v1", updated.IDBackImage)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUpdateResurrectsRejectedApplication(t *testing.T) {
	svc, _ := setupApplicationService(t)
	ctx := context.Background()

	app, err := svc.Submit(ctx, "user-1", testApplicationInput())
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, app.ID, domain.ApplicationRejected, "Blurry ID photo")
	require.NoError(t, err)

	input := testApplicationInput()
	input.IDFrontImage = "front-v2"

	updated, err := svc.Update(ctx, app.ID, input)
	require.NoError(t, err)

	// Editing a rejected application puts it back in the review queue
	assert.Equal(t, domain.ApplicationPending, updated.Status)
	// The rejection feedback is kept for reference
	assert.Equal(t, "Blurry ID photo", updated.Feedback)
}

func TestSetStatus(t *testing.T) {
	svc, now := setupApplicationService(t)
	ctx := context.Background()

	app, err := svc.Submit(ctx, "user-1", testApplicationInput())
	require.NoError(t, err)

	*now = now.Add(30 * time.Minute)

	t.Run("approve with feedback", func(t *testing.T) {
		updated, err := svc.SetStatus(ctx, app.ID, domain.ApplicationApproved, "Collect at Gaborone office")
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationApproved, updated.Status)
		assert.Equal(t, "Collect at Gaborone office", updated.Feedback)
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("empty feedback keeps previous", func(t *testing.T) {
		updated, err := svc.SetStatus(ctx, app.ID, domain.ApplicationRejected, "")
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationRejected, updated.Status)
		assert.Equal(t, "Collect at Gaborone office", updated.Feedback)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, app.ID, domain.ApplicationStatus("ARCHIVED"), "")
		assert.ErrorIs(t, err, domain.ErrInvalidApplicationStatus)
	})

	t.Run("unknown application", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, "missing-id", domain.ApplicationApproved, "")
		assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
	})
}

func TestListApplications(t *testing.T) {
	svc, _ := setupApplicationService(t)
	ctx := context.Background()

	a1, err := svc.Submit(ctx, "user-1", testApplicationInput())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "user-2", testApplicationInput())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "user-3", testApplicationInput())
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, a1.ID, domain.ApplicationApproved, "")
	require.NoError(t, err)

	t.Run("all", func(t *testing.T) {
		result, err := svc.List(ctx, &ListInput{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Total)
		assert.Len(t, result.Applications, 3)
	})

	t.Run("filtered by status", func(t *testing.T) {
		status := domain.ApplicationPending
		result, err := svc.List(ctx, &ListInput{Page: 1, Limit: 10, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Total)
		for _, app := range result.Applications {
			assert.Equal(t, domain.ApplicationPending, app.Status)
		}
	})

	t.Run("paginated", func(t *testing.T) {
		result, err := svc.List(ctx, &ListInput{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, result.Applications, 1)
		assert.Equal(t, 2, result.TotalPages)
	})
}
