package repository

import (
	"testing"

	"vigil/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the app schema. The
// production driver is mysql; sqlite keeps repository tests hermetic.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.GuardProfile{},
		&models.Site{},
		&models.Shift{},
		&models.LocationSample{},
		&models.GeofenceEvent{},
		&models.DeviceToken{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
