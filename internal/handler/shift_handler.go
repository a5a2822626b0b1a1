package handler

import (
	"net/http"
	"strconv"
	"time"

	"vigil/internal/domain"
	"vigil/internal/middleware"
	"vigil/internal/models"
	"vigil/internal/repository"

	"github.com/gin-gonic/gin"
)

type ShiftHandler struct {
	shiftRepo *repository.ShiftRepository
	guardRepo *repository.GuardRepository
	siteRepo  *repository.SiteRepository
}

func NewShiftHandler(shiftRepo *repository.ShiftRepository, guardRepo *repository.GuardRepository, siteRepo *repository.SiteRepository) *ShiftHandler {
	return &ShiftHandler{shiftRepo: shiftRepo, guardRepo: guardRepo, siteRepo: siteRepo}
}

// Create schedules a shift. Admin only.
func (h *ShiftHandler) Create(c *gin.Context) {
	var req struct {
		GuardID  uint      `json:"guard_id" binding:"required"`
		SiteID   uint      `json:"site_id" binding:"required"`
		StartsAt time.Time `json:"starts_at" binding:"required"`
		EndsAt   time.Time `json:"ends_at" binding:"required"`
		Notes    string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ends_at must be after starts_at"})
		return
	}
	companyID := middleware.GetCompanyID(c)
	guard, err := h.guardRepo.GetByID(req.GuardID)
	if err != nil || guard.CompanyID != companyID {
		c.JSON(http.StatusNotFound, gin.H{"error": "guard not found"})
		return
	}
	site, err := h.siteRepo.GetByID(req.SiteID)
	if err != nil || site.CompanyID != companyID {
		c.JSON(http.StatusNotFound, gin.H{"error": "site not found"})
		return
	}
	if !site.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "site is deactivated"})
		return
	}
	shift := &models.Shift{
		CompanyID: companyID,
		GuardID:   guard.ID,
		SiteID:    site.ID,
		Status:    domain.ShiftScheduled,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Notes:     req.Notes,
	}
	if err := h.shiftRepo.Create(shift); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"shift": shift})
}

// List returns company shifts for admins, own shifts for guards.
func (h *ShiftHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if middleware.GetRole(c) == domain.RoleGuard {
		guard, err := h.guardRepo.GetByUserID(middleware.GetUserID(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "guard profile not found"})
			return
		}
		shifts, err := h.shiftRepo.ListByGuard(guard.ID, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"shifts": shifts})
		return
	}
	shifts, err := h.shiftRepo.ListByCompany(middleware.GetCompanyID(c), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

// ClockIn moves the guard's shift from SCHEDULED to IN_PROGRESS.
func (h *ShiftHandler) ClockIn(c *gin.Context) {
	shift, guardOK := h.ownShift(c)
	if !guardOK {
		return
	}
	if shift.Status != domain.ShiftScheduled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift is not scheduled"})
		return
	}
	now := time.Now()
	shift.Status = domain.ShiftInProgress
	shift.ClockInAt = &now
	if err := h.shiftRepo.Update(shift); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": shift})
}

// ClockOut completes an IN_PROGRESS shift.
func (h *ShiftHandler) ClockOut(c *gin.Context) {
	shift, guardOK := h.ownShift(c)
	if !guardOK {
		return
	}
	if shift.Status != domain.ShiftInProgress {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift is not in progress"})
		return
	}
	now := time.Now()
	shift.Status = domain.ShiftCompleted
	shift.ClockOutAt = &now
	if err := h.shiftRepo.Update(shift); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": shift})
}

// Cancel voids a scheduled shift. Admin only.
func (h *ShiftHandler) Cancel(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	shift, err := h.shiftRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shift not found"})
		return
	}
	if shift.CompanyID != middleware.GetCompanyID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if shift.Status != domain.ShiftScheduled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only scheduled shifts can be cancelled"})
		return
	}
	shift.Status = domain.ShiftCancelled
	if err := h.shiftRepo.Update(shift); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": shift})
}

// ownShift loads the path shift and checks it belongs to the calling guard.
func (h *ShiftHandler) ownShift(c *gin.Context) (*models.Shift, bool) {
	guard, err := h.guardRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "guard profile not found"})
		return nil, false
	}
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	shift, err := h.shiftRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shift not found"})
		return nil, false
	}
	if shift.GuardID != guard.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return shift, true
}
