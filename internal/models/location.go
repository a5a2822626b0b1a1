package models

import (
	"time"
)

// LocationSample is one position report from a guard device. Rows are
// append-only; history per guard is never rewritten.
type LocationSample struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GuardID      uint      `gorm:"not null;index:idx_samples_guard_time" json:"guard_id"`
	ShiftID      *uint     `gorm:"index" json:"shift_id,omitempty"`
	Latitude     float64   `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude    float64   `gorm:"type:decimal(11,8);not null" json:"longitude"`
	AccuracyM    float64   `gorm:"type:decimal(8,2)" json:"accuracy_m"`
	BatteryLevel float64   `gorm:"type:decimal(5,2)" json:"battery_level"`
	CapturedAt   time.Time `gorm:"not null;index:idx_samples_guard_time" json:"captured_at"`
	CreatedAt    time.Time `json:"created_at"`

	Guard GuardProfile `gorm:"foreignKey:GuardID" json:"-"`
}

func (LocationSample) TableName() string {
	return "location_samples"
}
