package repository

import (
	"testing"
	"time"

	"vigil/internal/domain"
	"vigil/internal/models"

	"gorm.io/gorm"
)

func seedActiveGuard(t *testing.T, db *gorm.DB, companyID uint, username string) *models.GuardProfile {
	t.Helper()
	user := models.User{CompanyID: companyID, Email: username + "@example.com", Username: username, Role: domain.RoleGuard}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	guard := models.GuardProfile{UserID: user.ID, CompanyID: companyID, BadgeNumber: "B-" + username, IsActive: true}
	if err := db.Create(&guard).Error; err != nil {
		t.Fatalf("seed guard: %v", err)
	}
	shift := models.Shift{
		CompanyID: companyID,
		GuardID:   guard.ID,
		SiteID:    1,
		Status:    domain.ShiftInProgress,
		StartsAt:  time.Now().Add(-time.Hour),
		EndsAt:    time.Now().Add(time.Hour),
	}
	if err := db.Create(&shift).Error; err != nil {
		t.Fatalf("seed shift: %v", err)
	}
	return &guard
}

func TestLatestPerActiveGuard_ReturnsNewestSample(t *testing.T) {
	db := newTestDB(t)
	repo := NewLocationRepository(db)
	guard := seedActiveGuard(t, db, 1, "alice")

	base := time.Now().Add(-time.Minute)
	repo.Create(&models.LocationSample{GuardID: guard.ID, Latitude: 1, Longitude: 1, CapturedAt: base})
	repo.Create(&models.LocationSample{GuardID: guard.ID, Latitude: 2, Longitude: 2, CapturedAt: base.Add(10 * time.Second)})

	list, err := repo.LatestPerActiveGuard(1, time.Hour)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 row, got %d", len(list))
	}
	if list[0].Latitude != 2 {
		t.Errorf("latitude = %v, want the newer sample", list[0].Latitude)
	}
}

func TestLatestPerActiveGuard_TimestampTie(t *testing.T) {
	// Two samples can share captured_at (device clock granularity); the guard
	// must still appear exactly once, with the later insert winning.
	db := newTestDB(t)
	repo := NewLocationRepository(db)
	guard := seedActiveGuard(t, db, 1, "alice")

	at := time.Now().Add(-time.Minute)
	repo.Create(&models.LocationSample{GuardID: guard.ID, Latitude: 1, Longitude: 1, CapturedAt: at})
	repo.Create(&models.LocationSample{GuardID: guard.ID, Latitude: 2, Longitude: 2, CapturedAt: at})

	list, err := repo.LatestPerActiveGuard(1, time.Hour)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("guard appears %d times, want exactly once", len(list))
	}
	if list[0].Latitude != 2 {
		t.Errorf("latitude = %v, want the later insert to win the tie", list[0].Latitude)
	}
}

func TestLatestPerActiveGuard_ScopedToCompany(t *testing.T) {
	db := newTestDB(t)
	repo := NewLocationRepository(db)
	ours := seedActiveGuard(t, db, 1, "alice")
	theirs := seedActiveGuard(t, db, 2, "bob")

	now := time.Now()
	repo.Create(&models.LocationSample{GuardID: ours.ID, Latitude: 1, Longitude: 1, CapturedAt: now})
	repo.Create(&models.LocationSample{GuardID: theirs.ID, Latitude: 9, Longitude: 9, CapturedAt: now})

	list, err := repo.LatestPerActiveGuard(1, time.Hour)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 1 || list[0].GuardID != ours.ID {
		t.Fatalf("expected only company 1's guard, got %+v", list)
	}
}

func TestLatestPerActiveGuard_DropsStaleSamples(t *testing.T) {
	db := newTestDB(t)
	repo := NewLocationRepository(db)
	guard := seedActiveGuard(t, db, 1, "alice")

	repo.Create(&models.LocationSample{GuardID: guard.ID, Latitude: 1, Longitude: 1, CapturedAt: time.Now().Add(-time.Hour)})

	list, err := repo.LatestPerActiveGuard(1, 10*time.Minute)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("stale sample should be dropped, got %+v", list)
	}
}
