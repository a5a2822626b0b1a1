package repository

import (
	"vigil/internal/models"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(c *models.ClientProfile) error {
	return r.db.Create(c).Error
}

func (r *ClientRepository) GetByUserID(userID uint) (*models.ClientProfile, error) {
	var c models.ClientProfile
	if err := r.db.Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
