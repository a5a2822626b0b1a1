package models

import (
	"time"

	"vigil/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CompanyID    uint           `gorm:"not null;index" json:"company_id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username     string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // ADMIN | CLIENT | GUARD
	Phone        string         `gorm:"size:32" json:"phone"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Company      Company       `gorm:"foreignKey:CompanyID" json:"-"`
	GuardProfile *GuardProfile `gorm:"foreignKey:UserID" json:"guard_profile,omitempty"`
}

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }
func (u *User) IsGuard() bool { return u.Role == domain.RoleGuard }
