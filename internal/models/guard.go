package models

import (
	"time"

	"gorm.io/gorm"
)

type GuardProfile struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyID   uint           `gorm:"not null;index" json:"company_id"`
	BadgeNumber string         `gorm:"size:32;index" json:"badge_number"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (GuardProfile) TableName() string {
	return "guard_profiles"
}

type ClientProfile struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyID    uint           `gorm:"not null;index" json:"company_id"`
	Organization string         `gorm:"size:255" json:"organization"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (ClientProfile) TableName() string {
	return "client_profiles"
}
