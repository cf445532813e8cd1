package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrAssigneeNotFound      = errors.New("assigned user not found")
	ErrAdminOnly             = errors.New("only an admin can perform this action")
	ErrNotTaskParticipant    = errors.New("user is not assigned to this task")
	ErrNotPrimaryAssignee    = errors.New("only the primary assignee or an admin can post updates")
	ErrTitleRequired         = errors.New("title is required")
	ErrUpdateContentRequired = errors.New("update content is required")
	ErrInvalidTimelineAction = errors.New("timeline action must be confirm or reject")
	ErrInvalidStatus         = errors.New("invalid task status")
	ErrInvalidPriority       = errors.New("invalid task priority")
)

// TaskService owns the task lifecycle: creation, approval, timeline
// negotiation, progress updates and the daily alert sweep.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

func fullTaskPreloads() []string {
	return []string{"Creator", "AssignedUser", "Assignees", "Assignees.User"}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	Deadline    *time.Time
	Links       string
	AssignedTo  *uint64
	AssigneeIDs []uint64
}

// CreateTask creates a new task. Tasks created by an admin enter
// already approved; everyone else's wait for admin approval.
func (s *TaskService) CreateTask(actor *models.User, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	assigneeIDs := uniqueUint64(input.AssigneeIDs)
	if err := s.ensureUsersExist(input.AssignedTo, assigneeIDs); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:          input.Title,
		Description:    input.Description,
		Status:         models.TaskStatusPending,
		Priority:       input.Priority,
		Links:          input.Links,
		Deadline:       input.Deadline,
		AssignedTo:     input.AssignedTo,
		CreatedBy:      actor.ID,
		IsApproved:     actor.IsAdmin(),
		TimelineStatus: models.TimelinePending,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(assigneeIDs) > 0 {
		if err := s.taskRepo.ReplaceAssignees(task.ID, assigneeIDs); err != nil {
			return nil, fmt.Errorf("failed to assign users: %w", err)
		}
	}

	return s.taskRepo.FindByID(task.ID, fullTaskPreloads()...)
}

// ApproveTask flips the approval flag. No other field changes.
func (s *TaskService) ApproveTask(actor *models.User, taskID uint64) (*models.Task, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	task.IsApproved = true
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to approve task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, fullTaskPreloads()...)
}

// Timeline actions
const (
	TimelineActionConfirm = "confirm"
	TimelineActionReject  = "reject"
)

// ConfirmTimelineInput represents input for confirming or rejecting a
// task's proposed timeline
type ConfirmTimelineInput struct {
	Action           string
	EstimatedDays    *int
	Notes            string
	ProposedDeadline *time.Time
}

// ConfirmTimeline records the assignee's decision on a task timeline.
// Confirming moves the task to in_progress; rejecting parks it on_hold.
// Repeating either action simply re-stamps the same fields.
func (s *TaskService) ConfirmTimeline(actor *models.User, taskID uint64, input ConfirmTimelineInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignees")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !s.canActOnTimeline(actor, task) {
		return nil, ErrNotTaskParticipant
	}

	switch input.Action {
	case TimelineActionConfirm:
		now := time.Now()
		task.Status = models.TaskStatusInProgress
		task.TimelineStatus = models.TimelineConfirmed
		task.TimelineConfirmedAt = &now
		if input.EstimatedDays != nil {
			task.EstimatedDays = input.EstimatedDays
		}
		if input.Notes != "" {
			task.TimelineNotes = input.Notes
		}
		if input.ProposedDeadline != nil {
			task.ProposedDeadline = input.ProposedDeadline
		}
	case TimelineActionReject:
		task.Status = models.TaskStatusOnHold
		task.TimelineStatus = models.TimelineRejected
		if input.Notes != "" {
			task.TimelineNotes = input.Notes
		}
		if input.ProposedDeadline != nil {
			task.ProposedDeadline = input.ProposedDeadline
		}
	default:
		return nil, ErrInvalidTimelineAction
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update timeline: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, fullTaskPreloads()...)
}

// PostProgressUpdate appends an immutable progress note to the task.
// A recent note is the sole input that suppresses the daily alert sweep.
func (s *TaskService) PostProgressUpdate(actor *models.User, taskID uint64, content string) (*models.TaskUpdate, error) {
	if content == "" {
		return nil, ErrUpdateContentRequired
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	isPrimary := task.AssignedTo != nil && *task.AssignedTo == actor.ID
	if !isPrimary && !actor.IsAdmin() {
		return nil, ErrNotPrimaryAssignee
	}

	update := &models.TaskUpdate{
		TaskID:  task.ID,
		UserID:  actor.ID,
		Content: content,
	}

	if err := s.taskRepo.CreateUpdate(update); err != nil {
		return nil, fmt.Errorf("failed to create progress update: %w", err)
	}

	return update, nil
}

// ListProgressUpdates returns a task's progress notes, newest first.
func (s *TaskService) ListProgressUpdates(taskID uint64) ([]models.TaskUpdate, error) {
	if _, err := s.findTask(taskID); err != nil {
		return nil, err
	}

	updates, err := s.taskRepo.ListUpdates(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress updates: %w", err)
	}

	return updates, nil
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	Deadline    *time.Time
	Links       *string
	AssignedTo  *uint64
	AssigneeIDs []uint64
}

// UpdateTask applies a partial update to a task (admin only).
func (s *TaskService) UpdateTask(actor *models.User, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	// assigned_to of 0 clears the primary assignee, so skip it when
	// verifying referenced accounts.
	primary := input.AssignedTo
	if primary != nil && *primary == 0 {
		primary = nil
	}

	assigneeIDs := uniqueUint64(input.AssigneeIDs)
	if err := s.ensureUsersExist(primary, assigneeIDs); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Deadline != nil {
		task.Deadline = input.Deadline
	}
	if input.Links != nil {
		task.Links = *input.Links
	}
	if input.AssignedTo != nil {
		if *input.AssignedTo == 0 {
			task.AssignedTo = nil
			task.AssignedUser = nil
		} else {
			task.AssignedTo = input.AssignedTo
		}
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if input.AssigneeIDs != nil {
		if err := s.taskRepo.ReplaceAssignees(task.ID, assigneeIDs); err != nil {
			return nil, fmt.Errorf("failed to assign users: %w", err)
		}
	}

	return s.taskRepo.FindByID(task.ID, fullTaskPreloads()...)
}

// DeleteTask hard-deletes a task and its assignee and progress-update
// rows (admin only).
func (s *TaskService) DeleteTask(actor *models.User, taskID uint64) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}

	if _, err := s.findTask(taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// GetTask returns a task with related data.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, fullTaskPreloads()...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// ListMyTasks returns the tasks the user is assigned to, either as the
// primary assignee or through the assignee set.
func (s *TaskService) ListMyTasks(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListForAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListTasks returns tasks matching the filter (admin only).
func (s *TaskService) ListTasks(actor *models.User, filter repository.TaskFilter) ([]models.Task, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrAdminOnly
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// SweepResult summarizes one alert sweep invocation.
type SweepResult struct {
	Checked int `json:"checked"`
	Alerted int `json:"alerted"`
}

// DailyAlertSweep visits every approved task in pending or in_progress
// and increments its alert count when no progress update landed within
// the last 24 hours. Each qualifying task is visited at most once per
// invocation.
func (s *TaskService) DailyAlertSweep() (*SweepResult, error) {
	tasks, err := s.taskRepo.ListActiveApproved()
	if err != nil {
		return nil, fmt.Errorf("failed to list active tasks: %w", err)
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	result := &SweepResult{Checked: len(tasks)}

	for i := range tasks {
		task := &tasks[i]

		recent, err := s.taskRepo.HasUpdateSince(task.ID, cutoff)
		if err != nil {
			return nil, fmt.Errorf("failed to check updates for task %d: %w", task.ID, err)
		}
		if recent {
			continue
		}

		task.AlertCount++
		if err := s.taskRepo.Update(task); err != nil {
			return nil, fmt.Errorf("failed to update alert count for task %d: %w", task.ID, err)
		}
		result.Alerted++
	}

	return result, nil
}

func (s *TaskService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// canActOnTimeline reports whether the actor may confirm or reject the
// task's timeline: the primary assignee, any assignee-set member, or an
// admin.
func (s *TaskService) canActOnTimeline(actor *models.User, task *models.Task) bool {
	if actor.IsAdmin() {
		return true
	}
	if task.AssignedTo != nil && *task.AssignedTo == actor.ID {
		return true
	}
	for _, assignee := range task.Assignees {
		if assignee.UserID == actor.ID {
			return true
		}
	}
	return false
}

// ensureUsersExist verifies that the primary assignee and every
// assignee-set member reference an existing account.
func (s *TaskService) ensureUsersExist(primary *uint64, assigneeIDs []uint64) error {
	ids := make([]uint64, 0, len(assigneeIDs)+1)
	ids = append(ids, assigneeIDs...)
	if primary != nil {
		ids = append(ids, *primary)
	}
	ids = uniqueUint64(ids)

	if len(ids) == 0 {
		return nil
	}

	count, err := s.userRepo.CountByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(ids) {
		return ErrAssigneeNotFound
	}

	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
