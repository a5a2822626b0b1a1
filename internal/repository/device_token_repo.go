package repository

import (
	"vigil/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceTokenRepository struct {
	db *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{db: db}
}

// Upsert registers a token, replacing any previous token for the same
// (user, device) pair.
func (r *DeviceTokenRepository) Upsert(t *models.DeviceToken) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "platform", "updated_at"}),
	}).Create(t).Error
}

func (r *DeviceTokenRepository) ListByUserID(userID uint) ([]models.DeviceToken, error) {
	var list []models.DeviceToken
	err := r.db.Where("user_id = ?", userID).Find(&list).Error
	return list, err
}

// DeleteByDeviceID removes the row for good; the model carries no soft-delete
// column, so a later Upsert for the same device starts clean.
func (r *DeviceTokenRepository) DeleteByDeviceID(userID uint, deviceID string) error {
	return r.db.Where("user_id = ? AND device_id = ?", userID, deviceID).Delete(&models.DeviceToken{}).Error
}
