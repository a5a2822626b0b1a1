package repository

import (
	"vigil/internal/models"

	"gorm.io/gorm"
)

type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(i *models.Incident) error {
	return r.db.Create(i).Error
}

func (r *IncidentRepository) Update(i *models.Incident) error {
	return r.db.Save(i).Error
}

func (r *IncidentRepository) GetByID(id uint) (*models.Incident, error) {
	var i models.Incident
	if err := r.db.Preload("Reports").First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *IncidentRepository) ListByCompany(companyID uint, status string, limit, offset int) ([]models.Incident, error) {
	q := r.db.Where("company_id = ?", companyID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Incident
	err := q.Order("occurred_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *IncidentRepository) ListByGuard(guardID uint, limit, offset int) ([]models.Incident, error) {
	var list []models.Incident
	err := r.db.Where("guard_id = ?", guardID).
		Order("occurred_at DESC").Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *IncidentRepository) AddReport(rep *models.IncidentReport) error {
	return r.db.Create(rep).Error
}
