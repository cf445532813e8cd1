package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/farhanahmed/family-hub-api/internal/errors"
	"github.com/farhanahmed/family-hub-api/internal/middleware"
	"github.com/farhanahmed/family-hub-api/internal/services"
)

// NotificationHandler serves unread-count badges and mark-read endpoints.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GetCounts returns the caller's per-section unread counts.
func (h *NotificationHandler) GetCounts(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	counts, err := h.notificationService.Counts(user)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, counts)
}

// MarkMessagesRead clears the caller's unread message badge.
func (h *NotificationHandler) MarkMessagesRead(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.notificationService.MarkMessagesRead(user); err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Messages marked as read",
	})
}

// MarkAnnouncementsRead records read receipts for every announcement
// the caller has not seen yet. Safe to call repeatedly.
func (h *NotificationHandler) MarkAnnouncementsRead(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.notificationService.MarkAnnouncementsRead(user); err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Announcements marked as read",
	})
}
