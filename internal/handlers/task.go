package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farhanahmed/family-hub-api/internal/dto"
	apierrors "github.com/farhanahmed/family-hub-api/internal/errors"
	"github.com/farhanahmed/family-hub-api/internal/middleware"
	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
	"github.com/farhanahmed/family-hub-api/internal/services"
	"github.com/farhanahmed/family-hub-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListMyTasks returns tasks assigned to the authenticated user.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListMyTasks(user.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	items := make([]dto.TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = dto.ToTaskDTO(task)
	}
	c.JSON(http.StatusOK, items)
}

// ListTasks returns all tasks with optional filters (admin only).
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.TaskFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		filter.Status = &status
	}
	if creatorStr := c.Query("created_by"); creatorStr != "" {
		if creatorID, err := strconv.ParseUint(creatorStr, 10, 64); err == nil {
			filter.CreatorID = &creatorID
		}
	}
	if assignedStr := c.Query("assigned_to"); assignedStr != "" {
		if assignedID, err := strconv.ParseUint(assignedStr, 10, 64); err == nil {
			filter.AssignedUserID = &assignedID
		}
	}

	tasks, total, err := h.taskService.ListTasks(user, filter)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a single task with its relations.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task. Non-admin creations start unapproved.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Priority    string     `json:"priority"`
		Deadline    *time.Time `json:"deadline"`
		Links       string     `json:"links"`
		AssignedTo  *uint64    `json:"assigned_to"`
		AssigneeIDs []uint64   `json:"assignee_ids"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(user, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		Deadline:    req.Deadline,
		Links:       req.Links,
		AssignedTo:  req.AssignedTo,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task (admin only).
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		Priority    *string    `json:"priority"`
		Deadline    *time.Time `json:"deadline"`
		Links       *string    `json:"links"`
		AssignedTo  *uint64    `json:"assigned_to"`
		AssigneeIDs []uint64   `json:"assignee_ids"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Links:       req.Links,
		AssignedTo:  req.AssignedTo,
		AssigneeIDs: req.AssigneeIDs,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.taskService.UpdateTask(user, taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ApproveTask flips the approval flag (admin only).
func (h *TaskHandler) ApproveTask(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.ApproveTask(user, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ConfirmTimeline records the assignee's confirm/reject decision on a
// task's proposed timeline.
func (h *TaskHandler) ConfirmTimeline(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type ConfirmTimelineRequest struct {
		Action           string     `json:"action" binding:"required"`
		EstimatedDays    *int       `json:"estimated_days"`
		Notes            string     `json:"notes"`
		ProposedDeadline *time.Time `json:"proposed_deadline"`
	}

	var req ConfirmTimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.ConfirmTimeline(user, taskID, services.ConfirmTimelineInput{
		Action:           req.Action,
		EstimatedDays:    req.EstimatedDays,
		Notes:            req.Notes,
		ProposedDeadline: req.ProposedDeadline,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// PostProgressUpdate appends a progress note to a task.
func (h *TaskHandler) PostProgressUpdate(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type ProgressUpdateRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req ProgressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	update, err := h.taskService.PostProgressUpdate(user, taskID, req.Content)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskUpdateDTO(*update))
}

// ListProgressUpdates returns a task's progress notes, newest first.
func (h *TaskHandler) ListProgressUpdates(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	updates, err := h.taskService.ListProgressUpdates(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	items := make([]dto.TaskUpdateDTO, len(updates))
	for i, update := range updates {
		items[i] = dto.ToTaskUpdateDTO(update)
	}
	c.JSON(http.StatusOK, items)
}

// DeleteTask hard-deletes a task (admin only).
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(user, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAdminOnly),
		errors.Is(err, services.ErrNotTaskParticipant),
		errors.Is(err, services.ErrNotPrimaryAssignee):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrUpdateContentRequired),
		errors.Is(err, services.ErrInvalidTimelineAction),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
