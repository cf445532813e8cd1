package dto

import (
	"time"

	"github.com/farhanahmed/family-hub-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	Links       string              `json:"links,omitempty"`

	AssignedTo   *uint64   `json:"assigned_to"`
	AssignedUser *UserDTO  `json:"assigned_user,omitempty"`
	CreatedBy    uint64    `json:"created_by"`
	Creator      *UserDTO  `json:"creator,omitempty"`
	Assignees    []UserDTO `json:"assignees,omitempty"`

	IsApproved bool       `json:"is_approved"`
	Deadline   *time.Time `json:"deadline"`

	EstimatedDays       *int                  `json:"estimated_days"`
	TimelineStatus      models.TimelineStatus `json:"timeline_status"`
	TimelineNotes       string                `json:"timeline_notes,omitempty"`
	ProposedDeadline    *time.Time            `json:"proposed_deadline"`
	TimelineConfirmedAt *time.Time            `json:"timeline_confirmed_at"`

	AlertCount int       `json:"alert_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TaskUpdateDTO represents a progress update in API responses
type TaskUpdateDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"task_id"`
	UserID    uint64    `json:"user_id"`
	Author    *UserDTO  `json:"author,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                  task.ID,
		Title:               task.Title,
		Description:         task.Description,
		Status:              task.Status,
		Priority:            task.Priority,
		Links:               task.Links,
		AssignedTo:          task.AssignedTo,
		CreatedBy:           task.CreatedBy,
		IsApproved:          task.IsApproved,
		Deadline:            task.Deadline,
		EstimatedDays:       task.EstimatedDays,
		TimelineStatus:      task.TimelineStatus,
		TimelineNotes:       task.TimelineNotes,
		ProposedDeadline:    task.ProposedDeadline,
		TimelineConfirmedAt: task.TimelineConfirmedAt,
		AlertCount:          task.AlertCount,
		CreatedAt:           task.CreatedAt,
		UpdatedAt:           task.UpdatedAt,
	}

	// Include creator if preloaded
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}

	// Include primary assignee if preloaded
	if task.AssignedUser != nil && task.AssignedUser.ID != 0 {
		assigned := ToUserDTO(*task.AssignedUser)
		dto.AssignedUser = &assigned
	}

	// Include assignee set if preloaded
	if len(task.Assignees) > 0 {
		dto.Assignees = make([]UserDTO, len(task.Assignees))
		for i, assignee := range task.Assignees {
			dto.Assignees[i] = ToUserDTO(assignee.User)
		}
	}

	return dto
}

// ToTaskUpdateDTO converts a TaskUpdate model to TaskUpdateDTO
func ToTaskUpdateDTO(update models.TaskUpdate) TaskUpdateDTO {
	dto := TaskUpdateDTO{
		ID:        update.ID,
		TaskID:    update.TaskID,
		UserID:    update.UserID,
		Content:   update.Content,
		CreatedAt: update.CreatedAt,
	}

	if update.Author.ID != 0 {
		author := ToUserDTO(update.Author)
		dto.Author = &author
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
