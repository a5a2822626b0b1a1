package models

import (
	"time"
)

// DeviceToken is an FCM registration token for one installed app instance.
// A user can hold several (phone + tablet); stale tokens are left to the
// provider to reject. No soft delete: unregister removes the row outright so
// the (user, device) unique index never blocks a later re-register.
type DeviceToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_device" json:"user_id"`
	Token     string    `gorm:"size:512;not null" json:"token"`
	Platform  string    `gorm:"size:16;not null" json:"platform"` // ios | android
	DeviceID  string    `gorm:"size:128;not null;uniqueIndex:idx_user_device" json:"device_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}
