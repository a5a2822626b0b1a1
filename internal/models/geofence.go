package models

import (
	"time"
)

// GeofenceEvent records a guard crossing a site boundary. Append-only: the
// latest row per (guard, site) is the current membership state, and two
// consecutive rows for a pair never share a type.
type GeofenceEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GuardID    uint      `gorm:"not null;index:idx_geofence_pair" json:"guard_id"`
	SiteID     uint      `gorm:"not null;index:idx_geofence_pair" json:"site_id"`
	EventType  string    `gorm:"size:8;not null" json:"event_type"` // ENTER | EXIT
	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`

	Guard GuardProfile `gorm:"foreignKey:GuardID" json:"-"`
	Site  Site         `gorm:"foreignKey:SiteID" json:"-"`
}

func (GeofenceEvent) TableName() string {
	return "geofence_events"
}
