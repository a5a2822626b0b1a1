package repository

import (
	"time"

	"vigil/internal/models"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(s *models.LocationSample) error {
	return r.db.Create(s).Error
}

// LatestByGuard returns the most recent sample for a guard.
func (r *LocationRepository) LatestByGuard(guardID uint) (*models.LocationSample, error) {
	var s models.LocationSample
	err := r.db.Where("guard_id = ?", guardID).
		Order("captured_at DESC").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *LocationRepository) HistoryByGuard(guardID uint, limit, offset int) ([]models.LocationSample, error) {
	var list []models.LocationSample
	err := r.db.Where("guard_id = ?", guardID).
		Order("captured_at DESC").Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// LiveLocation is the latest known position for one on-duty guard.
type LiveLocation struct {
	GuardID      uint      `json:"guard_id"`
	Username     string    `json:"username"`
	BadgeNumber  string    `json:"badge_number"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	AccuracyM    float64   `json:"accuracy_m"`
	BatteryLevel float64   `json:"battery_level"`
	CapturedAt   time.Time `json:"captured_at"`
}

// LatestPerActiveGuard returns the newest sample per guard that has an
// IN_PROGRESS shift in the company, skipping samples older than staleAfter.
// Ties on captured_at break on the higher row id so each guard appears once.
func (r *LocationRepository) LatestPerActiveGuard(companyID uint, staleAfter time.Duration) ([]LiveLocation, error) {
	cutoff := time.Now().Add(-staleAfter)
	var list []LiveLocation
	err := r.db.Raw(`
		SELECT ls.guard_id, u.username, gp.badge_number,
		       ls.latitude, ls.longitude, ls.accuracy_m, ls.battery_level, ls.captured_at
		FROM location_samples ls
		JOIN (
			SELECT guard_id, MAX(id) AS id
			FROM location_samples
			WHERE (guard_id, captured_at) IN (
				SELECT guard_id, MAX(captured_at)
				FROM location_samples
				GROUP BY guard_id
			)
			GROUP BY guard_id
		) latest ON latest.id = ls.id
		JOIN guard_profiles gp ON gp.id = ls.guard_id
		JOIN users u ON u.id = gp.user_id
		WHERE gp.company_id = ?
		  AND ls.captured_at >= ?
		  AND EXISTS (
			SELECT 1 FROM shifts s
			WHERE s.guard_id = ls.guard_id AND s.status = 'IN_PROGRESS' AND s.deleted_at IS NULL
		  )`, companyID, cutoff).Scan(&list).Error
	return list, err
}
