package repository

import (
	"errors"
	"time"

	"vigil/internal/domain"
	"vigil/internal/models"

	"gorm.io/gorm"
)

type GeofenceRepository struct {
	db *gorm.DB
}

func NewGeofenceRepository(db *gorm.DB) *GeofenceRepository {
	return &GeofenceRepository{db: db}
}

func (r *GeofenceRepository) Create(e *models.GeofenceEvent) error {
	return r.db.Create(e).Error
}

func (r *GeofenceRepository) ListByGuard(guardID uint, limit, offset int) ([]models.GeofenceEvent, error) {
	var list []models.GeofenceEvent
	err := r.db.Where("guard_id = ?", guardID).
		Order("occurred_at DESC").Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// LatestEventType returns the type of the most recent event for the pair, or
// "" when no history exists (caller treats that as outside).
func (r *GeofenceRepository) LatestEventType(guardID, siteID uint) (string, error) {
	var e models.GeofenceEvent
	err := r.db.Where("guard_id = ? AND site_id = ?", guardID, siteID).
		Order("occurred_at DESC, id DESC").First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return e.EventType, nil
}

// AppendIfChanged records eventType for the pair only if it marks a real
// transition: a pair with no history counts as outside, so the first EXIT is
// a no-op and the first ENTER is recorded. The check and the insert share one
// transaction so concurrent samples for the same guard cannot double-record
// a transition. Returns true when an event was appended.
func (r *GeofenceRepository) AppendIfChanged(guardID, siteID uint, eventType string, occurredAt time.Time) (bool, error) {
	appended := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var last models.GeofenceEvent
		err := tx.Where("guard_id = ? AND site_id = ?", guardID, siteID).
			Order("occurred_at DESC, id DESC").First(&last).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		lastType := domain.GeofenceExit // no history means outside
		if err == nil {
			lastType = last.EventType
		}
		if lastType == eventType {
			return nil
		}
		if err := tx.Create(&models.GeofenceEvent{
			GuardID:    guardID,
			SiteID:     siteID,
			EventType:  eventType,
			OccurredAt: occurredAt,
		}).Error; err != nil {
			return err
		}
		appended = true
		return nil
	})
	return appended, err
}
