package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/farhanahmed/family-hub-api/internal/errors"
	"github.com/farhanahmed/family-hub-api/internal/services"
)

// AdminHandler exposes maintenance endpoints used by operators and
// internal schedulers.
type AdminHandler struct {
	taskService *services.TaskService
	userService *services.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(taskService *services.TaskService, userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		taskService: taskService,
		userService: userService,
	}
}

// CountUsers returns the total number of registered accounts.
func (h *AdminHandler) CountUsers(c *gin.Context) {
	count, err := h.userService.CountUsers()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// TriggerAlertSweep runs the stalled-task alert sweep once and reports
// how many tasks were checked and flagged.
func (h *AdminHandler) TriggerAlertSweep(c *gin.Context) {
	result, err := h.taskService.DailyAlertSweep()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, result)
}
