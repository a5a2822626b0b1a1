package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vigil/internal/domain"
	"vigil/internal/middleware"
	"vigil/internal/models"
	"vigil/internal/repository"
	"vigil/pkg/geo"

	"github.com/gin-gonic/gin"
)

type SiteHandler struct {
	siteRepo   *repository.SiteRepository
	clientRepo *repository.ClientRepository
}

func NewSiteHandler(siteRepo *repository.SiteRepository, clientRepo *repository.ClientRepository) *SiteHandler {
	return &SiteHandler{siteRepo: siteRepo, clientRepo: clientRepo}
}

type siteRequest struct {
	ClientID     uint         `json:"client_id"`
	Name         string       `json:"name" binding:"required"`
	Address      string       `json:"address"`
	BoundaryKind string       `json:"boundary_kind"`
	CenterLat    *float64     `json:"center_lat"`
	CenterLng    *float64     `json:"center_lng"`
	RadiusM      float64      `json:"radius_m"`
	Polygon      [][2]float64 `json:"polygon"`
}

// applyBoundary validates and copies boundary fields onto the site.
func (r *siteRequest) applyBoundary(site *models.Site) string {
	kind := r.BoundaryKind
	if kind == "" {
		kind = domain.BoundaryCircle
	}
	switch kind {
	case domain.BoundaryCircle:
		if r.CenterLat == nil || r.CenterLng == nil || !geo.ValidCoords(*r.CenterLat, *r.CenterLng) {
			return "valid center_lat/center_lng required"
		}
		if r.RadiusM <= 0 {
			return "radius_m must be positive"
		}
		site.CenterLat = *r.CenterLat
		site.CenterLng = *r.CenterLng
		site.RadiusM = r.RadiusM
		site.PolygonJSON = ""
	case domain.BoundaryPolygon:
		if len(r.Polygon) < 3 {
			return "polygon needs at least 3 vertices"
		}
		for _, v := range r.Polygon {
			if !geo.ValidCoords(v[0], v[1]) {
				return "polygon vertex out of range"
			}
		}
		b, _ := json.Marshal(r.Polygon)
		site.PolygonJSON = string(b)
	default:
		return "boundary_kind must be CIRCLE or POLYGON"
	}
	site.BoundaryKind = kind
	return ""
}

// resolveClientID maps the caller to a client profile: clients own their
// sites, admins must name the client.
func (h *SiteHandler) resolveClientID(c *gin.Context, requested uint) (uint, bool) {
	if middleware.GetRole(c) == domain.RoleClient {
		profile, err := h.clientRepo.GetByUserID(middleware.GetUserID(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "client profile not found"})
			return 0, false
		}
		return profile.ID, true
	}
	if requested == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_id required"})
		return 0, false
	}
	return requested, true
}

func (h *SiteHandler) Create(c *gin.Context) {
	var req siteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	clientID, ok := h.resolveClientID(c, req.ClientID)
	if !ok {
		return
	}
	site := &models.Site{
		CompanyID: middleware.GetCompanyID(c),
		ClientID:  clientID,
		Name:      req.Name,
		Address:   req.Address,
		IsActive:  true,
	}
	if msg := req.applyBoundary(site); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if err := h.siteRepo.Create(site); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"site": site})
}

func (h *SiteHandler) List(c *gin.Context) {
	if middleware.GetRole(c) == domain.RoleClient {
		profile, err := h.clientRepo.GetByUserID(middleware.GetUserID(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "client profile not found"})
			return
		}
		sites, err := h.siteRepo.ListByClient(profile.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sites": sites})
		return
	}
	sites, err := h.siteRepo.ListByCompany(middleware.GetCompanyID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sites": sites})
}

func (h *SiteHandler) getOwned(c *gin.Context) (*models.Site, bool) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	site, err := h.siteRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
		return nil, false
	}
	if site.CompanyID != middleware.GetCompanyID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	if middleware.GetRole(c) == domain.RoleClient {
		profile, err := h.clientRepo.GetByUserID(middleware.GetUserID(c))
		if err != nil || site.ClientID != profile.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return nil, false
		}
	}
	return site, true
}

func (h *SiteHandler) Get(c *gin.Context) {
	site, ok := h.getOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": site})
}

func (h *SiteHandler) Update(c *gin.Context) {
	site, ok := h.getOwned(c)
	if !ok {
		return
	}
	var req siteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	site.Name = req.Name
	site.Address = req.Address
	if msg := req.applyBoundary(site); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if err := h.siteRepo.Update(site); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": site})
}

// Delete soft-deactivates a site that shifts still reference, and soft-deletes
// it otherwise.
func (h *SiteHandler) Delete(c *gin.Context) {
	site, ok := h.getOwned(c)
	if !ok {
		return
	}
	referenced, err := h.siteRepo.HasShifts(site.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if referenced {
		if err := h.siteRepo.Deactivate(site.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
		return
	}
	if err := h.siteRepo.Delete(site.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
