package handler

import (
	"net/http"
	"strconv"
	"time"

	"vigil/config"
	"vigil/internal/domain"
	"vigil/internal/middleware"
	"vigil/internal/models"
	"vigil/internal/repository"
	"vigil/internal/service"
	"vigil/pkg/geo"

	"github.com/gin-gonic/gin"
)

type TrackingHandler struct {
	cfg         *config.Config
	guardRepo   *repository.GuardRepository
	shiftRepo   *repository.ShiftRepository
	locRepo     *repository.LocationRepository
	siteRepo    *repository.SiteRepository
	eventRepo   *repository.GeofenceRepository
	userRepo    *repository.UserRepository
	geofenceSvc *service.GeofenceService
	notifSvc    *service.NotificationService
}

func NewTrackingHandler(cfg *config.Config, guardRepo *repository.GuardRepository, shiftRepo *repository.ShiftRepository, locRepo *repository.LocationRepository, siteRepo *repository.SiteRepository, eventRepo *repository.GeofenceRepository, userRepo *repository.UserRepository, geofenceSvc *service.GeofenceService, notifSvc *service.NotificationService) *TrackingHandler {
	return &TrackingHandler{
		cfg:         cfg,
		guardRepo:   guardRepo,
		shiftRepo:   shiftRepo,
		locRepo:     locRepo,
		siteRepo:    siteRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		geofenceSvc: geofenceSvc,
		notifSvc:    notifSvc,
	}
}

// resolveGuard maps the request to a guard profile: guards act on their own
// profile, admins may pass guard_id for any guard in their company.
func (h *TrackingHandler) resolveGuard(c *gin.Context, guardID uint) (*models.GuardProfile, bool) {
	role := middleware.GetRole(c)
	if role == domain.RoleGuard {
		g, err := h.guardRepo.GetByUserID(middleware.GetUserID(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "guard profile not found"})
			return nil, false
		}
		return g, true
	}
	if guardID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guard_id required"})
		return nil, false
	}
	g, err := h.guardRepo.GetByID(guardID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "guard not found"})
		return nil, false
	}
	if g.CompanyID != middleware.GetCompanyID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return g, true
}

// IngestLocation persists one position sample and runs the geofence check
// against the guard's active-shift sites in the same request.
func (h *TrackingHandler) IngestLocation(c *gin.Context) {
	var req struct {
		GuardID      uint       `json:"guard_id"`
		Latitude     *float64   `json:"latitude" binding:"required"`
		Longitude    *float64   `json:"longitude" binding:"required"`
		AccuracyM    float64    `json:"accuracy_m"`
		BatteryLevel float64    `json:"battery_level"`
		Timestamp    *time.Time `json:"timestamp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !geo.ValidCoords(*req.Latitude, *req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}
	guard, ok := h.resolveGuard(c, req.GuardID)
	if !ok {
		return
	}

	// A sample without an active shift is still kept, just unassociated.
	var shiftID *uint
	if shift, err := h.shiftRepo.ActiveByGuard(guard.ID); err == nil {
		shiftID = &shift.ID
	}

	capturedAt := time.Now()
	if req.Timestamp != nil {
		capturedAt = *req.Timestamp
	}
	sample := &models.LocationSample{
		GuardID:      guard.ID,
		ShiftID:      shiftID,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		AccuracyM:    req.AccuracyM,
		BatteryLevel: req.BatteryLevel,
		CapturedAt:   capturedAt,
	}
	if err := h.locRepo.Create(sample); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	transitions := h.evaluateGeofences(guard, sample)
	c.JSON(http.StatusCreated, gin.H{"sample": sample, "geofence_transitions": transitions})
}

func (h *TrackingHandler) evaluateGeofences(guard *models.GuardProfile, sample *models.LocationSample) []service.Transition {
	sites, err := h.siteRepo.ActiveShiftSites(guard.ID)
	if err != nil || len(sites) == 0 {
		return nil
	}
	return h.geofenceSvc.Evaluate(guard.ID, h.guardName(guard), sample, sites)
}

func (h *TrackingHandler) guardName(guard *models.GuardProfile) string {
	u, err := h.userRepo.GetByID(guard.UserID)
	if err != nil {
		return "Guard #" + strconv.FormatUint(uint64(guard.ID), 10)
	}
	return u.Username
}

// LiveLocations returns the latest known position per on-duty guard.
func (h *TrackingHandler) LiveLocations(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	locs, err := h.locRepo.LatestPerActiveGuard(companyID, h.cfg.Tracking.StaleAfter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locs})
}

// RecordGeofenceEvent lets an admin insert a manual ENTER/EXIT record, e.g.
// to correct history after a device outage.
func (h *TrackingHandler) RecordGeofenceEvent(c *gin.Context) {
	var req struct {
		GuardID    uint       `json:"guard_id" binding:"required"`
		SiteID     uint       `json:"site_id" binding:"required"`
		EventType  string     `json:"event_type" binding:"required"`
		OccurredAt *time.Time `json:"occurred_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.EventType != domain.GeofenceEnter && req.EventType != domain.GeofenceExit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_type must be ENTER or EXIT"})
		return
	}
	guard, ok := h.resolveGuard(c, req.GuardID)
	if !ok {
		return
	}
	site, err := h.siteRepo.GetByID(req.SiteID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
		return
	}
	if site.CompanyID != middleware.GetCompanyID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}
	event := &models.GeofenceEvent{
		GuardID:    guard.ID,
		SiteID:     site.ID,
		EventType:  req.EventType,
		OccurredAt: occurredAt,
	}
	if err := h.eventRepo.Create(event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// ListGeofenceEvents returns a guard's boundary-crossing history.
func (h *TrackingHandler) ListGeofenceEvents(c *gin.Context) {
	guardID, _ := strconv.ParseUint(c.Param("guardId"), 10, 64)
	guard, ok := h.resolveGuard(c, uint(guardID))
	if !ok {
		return
	}
	if middleware.GetRole(c) == domain.RoleGuard && uint(guardID) != 0 && uint(guardID) != guard.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	events, err := h.eventRepo.ListByGuard(guard.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// CheckGeofences re-evaluates a guard's most recent sample on demand.
func (h *TrackingHandler) CheckGeofences(c *gin.Context) {
	guardID, _ := strconv.ParseUint(c.Param("guardId"), 10, 64)
	guard, ok := h.resolveGuard(c, uint(guardID))
	if !ok {
		return
	}
	sample, err := h.locRepo.LatestByGuard(guard.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no location samples for guard"})
		return
	}
	transitions := h.evaluateGeofences(guard, sample)
	c.JSON(http.StatusOK, gin.H{"sample": sample, "geofence_transitions": transitions})
}

// Emergency is the panic button: alerts every admin in the guard's company.
func (h *TrackingHandler) Emergency(c *gin.Context) {
	guard, ok := h.resolveGuard(c, 0)
	if !ok {
		return
	}
	var req struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	_ = c.ShouldBindJSON(&req)
	var lat, lng float64
	if req.Latitude != nil && req.Longitude != nil && geo.ValidCoords(*req.Latitude, *req.Longitude) {
		lat, lng = *req.Latitude, *req.Longitude
	} else if sample, err := h.locRepo.LatestByGuard(guard.ID); err == nil {
		lat, lng = sample.Latitude, sample.Longitude
	}
	h.notifSvc.EmergencyAlert(guard.CompanyID, h.guardName(guard), lat, lng)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
