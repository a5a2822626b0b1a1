package models

import (
	"time"

	"gorm.io/gorm"
)

type Shift struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CompanyID      uint           `gorm:"not null;index" json:"company_id"`
	GuardID        uint           `gorm:"not null;index" json:"guard_id"`
	SiteID         uint           `gorm:"not null;index" json:"site_id"`
	Status         string         `gorm:"size:20;not null;index" json:"status"` // SCHEDULED, IN_PROGRESS, COMPLETED, CANCELLED
	StartsAt       time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt         time.Time      `gorm:"not null" json:"ends_at"`
	ClockInAt      *time.Time     `json:"clock_in_at"`
	ClockOutAt     *time.Time     `json:"clock_out_at"`
	ReminderSentAt *time.Time     `json:"-"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Guard GuardProfile `gorm:"foreignKey:GuardID" json:"-"`
	Site  Site         `gorm:"foreignKey:SiteID" json:"site,omitempty"`
}

func (Shift) TableName() string {
	return "shifts"
}
