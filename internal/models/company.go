package models

import (
	"time"

	"gorm.io/gorm"
)

// Company is the tenant boundary: every user, site, and shift belongs to one.
type Company struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	ContactEmail string         `gorm:"size:255" json:"contact_email"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Company) TableName() string {
	return "companies"
}
