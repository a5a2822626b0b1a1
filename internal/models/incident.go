package models

import (
	"time"

	"gorm.io/gorm"
)

type Incident struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CompanyID   uint           `gorm:"not null;index" json:"company_id"`
	GuardID     uint           `gorm:"not null;index" json:"guard_id"`
	SiteID      *uint          `gorm:"index" json:"site_id,omitempty"`
	Category    string         `gorm:"size:64;not null" json:"category"`
	Severity    string         `gorm:"size:16;not null;index" json:"severity"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	PhotoURL    string         `gorm:"size:512" json:"photo_url"`
	Status      string         `gorm:"size:20;not null;index" json:"status"` // OPEN, IN_REVIEW, RESOLVED
	OccurredAt  time.Time      `gorm:"not null;index" json:"occurred_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Guard   GuardProfile     `gorm:"foreignKey:GuardID" json:"-"`
	Reports []IncidentReport `gorm:"foreignKey:IncidentID" json:"reports,omitempty"`
}

func (Incident) TableName() string {
	return "incidents"
}

// IncidentReport is a follow-up note attached to an incident.
type IncidentReport struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	IncidentID uint           `gorm:"not null;index" json:"incident_id"`
	AuthorID   uint           `gorm:"not null;index" json:"author_id"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (IncidentReport) TableName() string {
	return "incident_reports"
}
