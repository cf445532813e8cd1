package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farhanahmed/family-hub-api/internal/dto"
	apierrors "github.com/farhanahmed/family-hub-api/internal/errors"
	"github.com/farhanahmed/family-hub-api/internal/middleware"
	"github.com/farhanahmed/family-hub-api/internal/services"
)

// AnnouncementHandler coordinates announcement board handlers.
type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
	}
}

// ListAnnouncements returns all announcements, newest first.
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	announcements, err := h.announcementService.ListAnnouncements()
	if err != nil {
		respondAnnouncementError(c, err)
		return
	}

	items := make([]dto.AnnouncementDTO, len(announcements))
	for i, announcement := range announcements {
		items[i] = dto.ToAnnouncementDTO(announcement)
	}
	c.JSON(http.StatusOK, items)
}

// CreateAnnouncement posts a new announcement (admin only).
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateAnnouncementRequest struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}

	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	announcement, err := h.announcementService.CreateAnnouncement(user, services.CreateAnnouncementInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondAnnouncementError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAnnouncementDTO(*announcement))
}

// UpdateAnnouncement edits an existing announcement (admin only).
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	announcementID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateAnnouncementRequest struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}

	var req UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	announcement, err := h.announcementService.UpdateAnnouncement(user, announcementID, services.UpdateAnnouncementInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondAnnouncementError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnnouncementDTO(*announcement))
}

// DeleteAnnouncement removes an announcement (admin only).
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	announcementID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.announcementService.DeleteAnnouncement(user, announcementID); err != nil {
		respondAnnouncementError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Announcement deleted successfully",
	})
}

func respondAnnouncementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAnnouncementNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAdminOnly):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrContentRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
