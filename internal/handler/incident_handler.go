package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"vigil/internal/domain"
	"vigil/internal/middleware"
	"vigil/internal/models"
	"vigil/internal/repository"
	"vigil/internal/service"
	"vigil/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IncidentHandler struct {
	incidentRepo *repository.IncidentRepository
	guardRepo    *repository.GuardRepository
	siteRepo     *repository.SiteRepository
	notifSvc     *service.NotificationService
	cloud        cloudinary.Client
}

func NewIncidentHandler(incidentRepo *repository.IncidentRepository, guardRepo *repository.GuardRepository, siteRepo *repository.SiteRepository, notifSvc *service.NotificationService, cloud cloudinary.Client) *IncidentHandler {
	return &IncidentHandler{
		incidentRepo: incidentRepo,
		guardRepo:    guardRepo,
		siteRepo:     siteRepo,
		notifSvc:     notifSvc,
		cloud:        cloud,
	}
}

func validSeverity(s string) bool {
	for _, v := range domain.IncidentSeverities {
		if v == s {
			return true
		}
	}
	return false
}

// Create files an incident. Guard only; alerts company admins.
func (h *IncidentHandler) Create(c *gin.Context) {
	guard, err := h.guardRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "guard profile not found"})
		return
	}
	var req struct {
		SiteID      uint       `json:"site_id"`
		Category    string     `json:"category" binding:"required"`
		Severity    string     `json:"severity" binding:"required"`
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		PhotoURL    string     `json:"photo_url"`
		OccurredAt  *time.Time `json:"occurred_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validSeverity(req.Severity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid severity"})
		return
	}
	var siteID *uint
	if req.SiteID != 0 {
		site, err := h.siteRepo.GetByID(req.SiteID)
		if err != nil || site.CompanyID != guard.CompanyID {
			c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
			return
		}
		siteID = &site.ID
	}
	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}
	incident := &models.Incident{
		CompanyID:   guard.CompanyID,
		GuardID:     guard.ID,
		SiteID:      siteID,
		Category:    req.Category,
		Severity:    req.Severity,
		Title:       req.Title,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Status:      domain.IncidentOpen,
		OccurredAt:  occurredAt,
	}
	if err := h.incidentRepo.Create(incident); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	h.notifSvc.IncidentAlert(incident.CompanyID, incident.ID, incident.Severity, incident.Title)
	c.JSON(http.StatusCreated, gin.H{"incident": incident})
}

// UploadPhoto accepts a multipart image and returns the hosted URL for use in
// a subsequent incident create/update.
func (h *IncidentHandler) UploadPhoto(c *gin.Context) {
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads not configured"})
		return
	}
	userID := middleware.GetUserID(c)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	folder := "vigil/incidents/" + strconv.FormatUint(uint64(userID), 10)
	publicID := "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// List returns company incidents for admins/clients, own incidents for guards.
func (h *IncidentHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if middleware.GetRole(c) == domain.RoleGuard {
		guard, err := h.guardRepo.GetByUserID(middleware.GetUserID(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "guard profile not found"})
			return
		}
		list, err := h.incidentRepo.ListByGuard(guard.ID, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"incidents": list})
		return
	}
	status := c.Query("status")
	list, err := h.incidentRepo.ListByCompany(middleware.GetCompanyID(c), status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"incidents": list})
}

func (h *IncidentHandler) getOwned(c *gin.Context) (*models.Incident, bool) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	incident, err := h.incidentRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return nil, false
	}
	if incident.CompanyID != middleware.GetCompanyID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	if middleware.GetRole(c) == domain.RoleGuard {
		guard, err := h.guardRepo.GetByUserID(middleware.GetUserID(c))
		if err != nil || incident.GuardID != guard.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return nil, false
		}
	}
	return incident, true
}

func (h *IncidentHandler) Get(c *gin.Context) {
	incident, ok := h.getOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"incident": incident})
}

// AddReport appends a follow-up note to an incident.
func (h *IncidentHandler) AddReport(c *gin.Context) {
	incident, ok := h.getOwned(c)
	if !ok {
		return
	}
	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report := &models.IncidentReport{
		IncidentID: incident.ID,
		AuthorID:   middleware.GetUserID(c),
		Body:       req.Body,
	}
	if err := h.incidentRepo.AddReport(report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// UpdateStatus moves an incident through OPEN -> IN_REVIEW -> RESOLVED. Admin only.
func (h *IncidentHandler) UpdateStatus(c *gin.Context) {
	incident, ok := h.getOwned(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case domain.IncidentOpen, domain.IncidentInReview, domain.IncidentResolved:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	incident.Status = req.Status
	if err := h.incidentRepo.Update(incident); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"incident": incident})
}
