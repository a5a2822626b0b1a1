package handler

import (
	"net/http"
	"strconv"

	"vigil/internal/domain"
	"vigil/internal/middleware"
	"vigil/internal/models"
	"vigil/internal/repository"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	repo      *repository.NotificationRepository
	tokenRepo *repository.DeviceTokenRepository
}

func NewNotificationHandler(repo *repository.NotificationRepository, tokenRepo *repository.DeviceTokenRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo, tokenRepo: tokenRepo}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.repo.ListByUserID(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	unread, _ := h.repo.UnreadCount(userID)
	c.JSON(http.StatusOK, gin.H{"notifications": list, "unread_count": unread})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.MarkRead(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterDevice saves an FCM token for the caller's device.
func (h *NotificationHandler) RegisterDevice(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Platform string `json:"platform" binding:"required"`
		DeviceID string `json:"device_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Platform != domain.PlatformIOS && req.Platform != domain.PlatformAndroid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "platform must be ios or android"})
		return
	}
	token := &models.DeviceToken{
		UserID:   middleware.GetUserID(c),
		Token:    req.Token,
		Platform: req.Platform,
		DeviceID: req.DeviceID,
	}
	if err := h.tokenRepo.Upsert(token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UnregisterDevice removes the token for a device, e.g. on logout.
func (h *NotificationHandler) UnregisterDevice(c *gin.Context) {
	var req struct {
		DeviceID string `json:"device_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.tokenRepo.DeleteByDeviceID(middleware.GetUserID(c), req.DeviceID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
