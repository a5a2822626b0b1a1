package models

import (
	"time"

	"gorm.io/gorm"
)

// Site is a client location with a geofence boundary. Circles store a center
// point plus radius; polygons store their vertices as a JSON array in
// PolygonJSON. Separate lat/lng columns keep Haversine queries portable.
type Site struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CompanyID    uint           `gorm:"not null;index" json:"company_id"`
	ClientID     uint           `gorm:"not null;index" json:"client_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Address      string         `gorm:"size:512" json:"address"`
	BoundaryKind string         `gorm:"size:16;not null;default:CIRCLE" json:"boundary_kind"` // CIRCLE | POLYGON
	CenterLat    float64        `gorm:"type:decimal(10,8)" json:"center_lat"`
	CenterLng    float64        `gorm:"type:decimal(11,8)" json:"center_lng"`
	RadiusM      float64        `gorm:"type:decimal(10,2)" json:"radius_m"`
	PolygonJSON  string         `gorm:"type:text" json:"polygon_json,omitempty"` // [[lat,lng],...]
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Client ClientProfile `gorm:"foreignKey:ClientID" json:"-"`
}

func (Site) TableName() string {
	return "sites"
}
