package service

import (
	"encoding/json"
	"testing"
	"time"

	"vigil/internal/domain"
	"vigil/internal/models"
	"vigil/pkg/geo"
)

// fakeGeofenceLog mirrors the repository contract: no history counts as
// outside, and only real transitions are appended.
type fakeGeofenceLog struct {
	last     map[[2]uint]string
	appended []string
	failNext bool
	err      error
}

func newFakeGeofenceLog() *fakeGeofenceLog {
	return &fakeGeofenceLog{last: make(map[[2]uint]string)}
}

func (f *fakeGeofenceLog) AppendIfChanged(guardID, siteID uint, eventType string, occurredAt time.Time) (bool, error) {
	if f.failNext {
		f.failNext = false
		return false, f.err
	}
	key := [2]uint{guardID, siteID}
	lastType, ok := f.last[key]
	if !ok {
		lastType = domain.GeofenceExit
	}
	if lastType == eventType {
		return false, nil
	}
	f.last[key] = eventType
	f.appended = append(f.appended, eventType)
	return true, nil
}

type fakeNotifier struct {
	calls []string
}

func (f *fakeNotifier) GeofenceTransition(guardName string, site *models.Site, eventType string) {
	f.calls = append(f.calls, eventType)
}

func circleSite(id uint, radiusM float64) models.Site {
	return models.Site{
		ID:           id,
		Name:         "warehouse",
		CompanyID:    1,
		BoundaryKind: domain.BoundaryCircle,
		CenterLat:    0,
		CenterLng:    0,
		RadiusM:      radiusM,
	}
}

func sampleAt(lat, lng float64) *models.LocationSample {
	return &models.LocationSample{GuardID: 7, Latitude: lat, Longitude: lng, CapturedAt: time.Now()}
}

func TestEvaluate_OutsideToInside_EmitsSingleEnter(t *testing.T) {
	log := newFakeGeofenceLog()
	notifier := &fakeNotifier{}
	svc := NewGeofenceService(log, notifier)
	sites := []models.Site{circleSite(3, 150)}

	emitted := svc.Evaluate(7, "alice", sampleAt(0, 0.0009), sites)

	if len(emitted) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(emitted))
	}
	if emitted[0].EventType != domain.GeofenceEnter {
		t.Errorf("expected ENTER, got %s", emitted[0].EventType)
	}
	if emitted[0].SiteID != 3 {
		t.Errorf("expected site 3, got %d", emitted[0].SiteID)
	}
	if len(notifier.calls) != 1 || notifier.calls[0] != domain.GeofenceEnter {
		t.Errorf("expected one ENTER notification, got %v", notifier.calls)
	}
}

func TestEvaluate_FirstSampleOutside_EmitsNothing(t *testing.T) {
	log := newFakeGeofenceLog()
	notifier := &fakeNotifier{}
	svc := NewGeofenceService(log, notifier)
	sites := []models.Site{circleSite(3, 150)}

	emitted := svc.Evaluate(7, "alice", sampleAt(0, 0.01), sites)

	if len(emitted) != 0 {
		t.Fatalf("expected no transitions, got %v", emitted)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("expected no notifications, got %v", notifier.calls)
	}
}

func TestEvaluate_UnchangedMembership_IsIdempotent(t *testing.T) {
	log := newFakeGeofenceLog()
	svc := NewGeofenceService(log, &fakeNotifier{})
	sites := []models.Site{circleSite(3, 150)}

	svc.Evaluate(7, "alice", sampleAt(0, 0.0005), sites)
	emitted := svc.Evaluate(7, "alice", sampleAt(0, 0.0006), sites)

	if len(emitted) != 0 {
		t.Fatalf("second inside sample should emit nothing, got %v", emitted)
	}
	if len(log.appended) != 1 {
		t.Errorf("expected exactly 1 event in the log, got %d", len(log.appended))
	}
}

func TestEvaluate_InsideToOutside_EmitsSingleExit(t *testing.T) {
	// Guard near a 150m fence: ~100m away is inside, ~222m away is outside.
	log := newFakeGeofenceLog()
	notifier := &fakeNotifier{}
	svc := NewGeofenceService(log, notifier)
	sites := []models.Site{circleSite(3, 150)}

	svc.Evaluate(7, "alice", sampleAt(0, 0.0009), sites)
	emitted := svc.Evaluate(7, "alice", sampleAt(0, 0.002), sites)

	if len(emitted) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(emitted))
	}
	if emitted[0].EventType != domain.GeofenceExit {
		t.Errorf("expected EXIT, got %s", emitted[0].EventType)
	}
	if len(log.appended) != 2 || log.appended[1] != domain.GeofenceExit {
		t.Errorf("expected log [ENTER EXIT], got %v", log.appended)
	}
}

func TestEvaluate_LogError_SkipsSiteAndContinues(t *testing.T) {
	log := newFakeGeofenceLog()
	log.failNext = true
	log.err = errFake
	svc := NewGeofenceService(log, &fakeNotifier{})
	sites := []models.Site{circleSite(3, 150), circleSite(4, 150)}

	emitted := svc.Evaluate(7, "alice", sampleAt(0, 0.0005), sites)

	if len(emitted) != 1 {
		t.Fatalf("expected the second site to still emit, got %d", len(emitted))
	}
	if emitted[0].SiteID != 4 {
		t.Errorf("expected site 4, got %d", emitted[0].SiteID)
	}
}

func TestSiteContains_CircleBoundaryInclusive(t *testing.T) {
	d := geo.HaversineM(0, 0, 0, 0.0009)
	site := circleSite(1, d)
	if !SiteContains(&site, 0, 0.0009) {
		t.Error("sample exactly at radius distance should be inside")
	}
}

func TestSiteContains_Polygon(t *testing.T) {
	poly, _ := json.Marshal([][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}})
	site := models.Site{ID: 9, BoundaryKind: domain.BoundaryPolygon, PolygonJSON: string(poly)}

	if !SiteContains(&site, 0.5, 0.5) {
		t.Error("point inside polygon should be inside")
	}
	if SiteContains(&site, 2, 2) {
		t.Error("point outside polygon should be outside")
	}
}

func TestSiteContains_BadPolygonJSON(t *testing.T) {
	site := models.Site{ID: 9, BoundaryKind: domain.BoundaryPolygon, PolygonJSON: "{not json"}
	if SiteContains(&site, 0.5, 0.5) {
		t.Error("unparseable polygon should never contain a point")
	}
}
