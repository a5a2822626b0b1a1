package repository

import (
	"vigil/internal/models"

	"gorm.io/gorm"
)

type GuardRepository struct {
	db *gorm.DB
}

func NewGuardRepository(db *gorm.DB) *GuardRepository {
	return &GuardRepository{db: db}
}

func (r *GuardRepository) Create(g *models.GuardProfile) error {
	return r.db.Create(g).Error
}

func (r *GuardRepository) GetByID(id uint) (*models.GuardProfile, error) {
	var g models.GuardProfile
	if err := r.db.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GuardRepository) GetByUserID(userID uint) (*models.GuardProfile, error) {
	var g models.GuardProfile
	if err := r.db.Where("user_id = ?", userID).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GuardRepository) ListByCompany(companyID uint) ([]models.GuardProfile, error) {
	var list []models.GuardProfile
	err := r.db.Where("company_id = ? AND is_active = ?", companyID, true).Find(&list).Error
	return list, err
}
