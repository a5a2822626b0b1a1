package service

import (
	"encoding/json"
	"log"
	"time"

	"vigil/internal/domain"
	"vigil/internal/models"
	"vigil/pkg/geo"
)

type geofenceLog interface {
	AppendIfChanged(guardID, siteID uint, eventType string, occurredAt time.Time) (bool, error)
}

type transitionNotifier interface {
	GeofenceTransition(guardName string, site *models.Site, eventType string)
}

// Transition is one boundary crossing emitted by an evaluation pass.
type Transition struct {
	SiteID     uint      `json:"site_id"`
	SiteName   string    `json:"site_name"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
}

// GeofenceService turns location samples into ENTER/EXIT events. Membership
// state per (guard, site) is the latest event in the log, defaulting to
// outside, so it survives restarts without any in-memory map.
type GeofenceService struct {
	log      geofenceLog
	notifier transitionNotifier
}

func NewGeofenceService(eventLog geofenceLog, notifier transitionNotifier) *GeofenceService {
	return &GeofenceService{log: eventLog, notifier: notifier}
}

// Evaluate checks one sample against every site and records transitions.
// It runs once per ingested sample, synchronously, so events come out in
// sample order. Returns the transitions that were actually recorded.
func (s *GeofenceService) Evaluate(guardID uint, guardName string, sample *models.LocationSample, sites []models.Site) []Transition {
	var emitted []Transition
	for i := range sites {
		site := &sites[i]
		eventType := domain.GeofenceExit
		if SiteContains(site, sample.Latitude, sample.Longitude) {
			eventType = domain.GeofenceEnter
		}
		appended, err := s.log.AppendIfChanged(guardID, site.ID, eventType, sample.CapturedAt)
		if err != nil {
			log.Printf("[geofence] guard %d site %d: %v", guardID, site.ID, err)
			continue
		}
		if !appended {
			continue
		}
		emitted = append(emitted, Transition{
			SiteID:     site.ID,
			SiteName:   site.Name,
			EventType:  eventType,
			OccurredAt: sample.CapturedAt,
		})
		if s.notifier != nil {
			s.notifier.GeofenceTransition(guardName, site, eventType)
		}
	}
	return emitted
}

// SiteContains reports whether a point falls inside the site boundary.
// Circle boundaries are inclusive: a point exactly at the radius is inside.
func SiteContains(site *models.Site, lat, lng float64) bool {
	if site.BoundaryKind == domain.BoundaryPolygon {
		var raw [][2]float64
		if err := json.Unmarshal([]byte(site.PolygonJSON), &raw); err != nil {
			log.Printf("[geofence] site %d polygon: %v", site.ID, err)
			return false
		}
		poly := make([]geo.Point, len(raw))
		for i, v := range raw {
			poly[i] = geo.Point{Lat: v[0], Lng: v[1]}
		}
		return geo.InPolygon(lat, lng, poly)
	}
	return geo.InCircle(lat, lng, site.CenterLat, site.CenterLng, site.RadiusM)
}
