package repository

import (
	"time"

	"vigil/internal/domain"
	"vigil/internal/models"

	"gorm.io/gorm"
)

type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(s *models.Shift) error {
	return r.db.Create(s).Error
}

func (r *ShiftRepository) Update(s *models.Shift) error {
	return r.db.Save(s).Error
}

func (r *ShiftRepository) GetByID(id uint) (*models.Shift, error) {
	var s models.Shift
	if err := r.db.Preload("Site").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShiftRepository) ListByCompany(companyID uint, limit, offset int) ([]models.Shift, error) {
	var list []models.Shift
	err := r.db.Preload("Site").
		Where("company_id = ?", companyID).
		Order("starts_at DESC").Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *ShiftRepository) ListByGuard(guardID uint, limit, offset int) ([]models.Shift, error) {
	var list []models.Shift
	err := r.db.Preload("Site").
		Where("guard_id = ?", guardID).
		Order("starts_at DESC").Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

// ActiveByGuard returns the guard's IN_PROGRESS shift, if any.
func (r *ShiftRepository) ActiveByGuard(guardID uint) (*models.Shift, error) {
	var s models.Shift
	err := r.db.Where("guard_id = ? AND status = ?", guardID, domain.ShiftInProgress).
		Order("starts_at DESC").First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DueForReminder returns scheduled shifts starting within the window that
// have not been reminded yet.
func (r *ShiftRepository) DueForReminder(window time.Duration, now time.Time) ([]models.Shift, error) {
	var list []models.Shift
	err := r.db.Preload("Site").Preload("Guard").
		Where("status = ? AND reminder_sent_at IS NULL", domain.ShiftScheduled).
		Where("starts_at > ? AND starts_at <= ?", now, now.Add(window)).
		Find(&list).Error
	return list, err
}

func (r *ShiftRepository) MarkReminded(shiftID uint, at time.Time) error {
	return r.db.Model(&models.Shift{}).Where("id = ?", shiftID).Update("reminder_sent_at", at).Error
}
