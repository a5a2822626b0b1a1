package database

import (
	"log"

	"vigil/config"
	"vigil/internal/domain"
	"vigil/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.GuardProfile{},
		&models.ClientProfile{},
		&models.Site{},
		&models.Shift{},
		&models.LocationSample{},
		&models.GeofenceEvent{},
		&models.Incident{},
		&models.IncidentReport{},
		&models.Notification{},
		&models.DeviceToken{},
	)
}

// SeedAdmin creates a default company and admin account on an empty database
// so the first login is possible without manual SQL.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	company := models.Company{Name: "Default Security Co", ContactEmail: "ops@example.com"}
	if err := db.Create(&company).Error; err != nil {
		log.Printf("[seed] company: %v", err)
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := models.User{
		CompanyID:    company.ID,
		Email:        "admin@example.com",
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[seed] admin: %v", err)
		return
	}
	log.Printf("[seed] created default admin (admin@example.com / admin123)")
}
