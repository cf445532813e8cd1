package repository

import (
	"time"

	"github.com/farhanahmed/family-hub-api/internal/database"
	"github.com/farhanahmed/family-hub-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.CreatorID != nil {
		query = query.Where("tasks.created_by = ?", *filter.CreatorID)
	}
	if filter.AssignedUserID != nil {
		assigneeSubQuery := r.db.Model(&models.TaskAssignee{}).
			Select("1").
			Where("task_assignees.task_id = tasks.id").
			Where("task_assignees.user_id = ?", *filter.AssignedUserID)
		query = query.Where("tasks.assigned_to = ? OR EXISTS (?)", *filter.AssignedUserID, assigneeSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))
	}

	if err := listQuery.Preload("Creator").Preload("AssignedUser").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListForAssignee returns tasks where the user is the primary assignee
// or a member of the assignee set
func (r *GormTaskRepository) ListForAssignee(userID uint64) ([]models.Task, error) {
	var tasks []models.Task

	assigneeSubQuery := r.db.Model(&models.TaskAssignee{}).
		Select("1").
		Where("task_assignees.task_id = tasks.id").
		Where("task_assignees.user_id = ?", userID)

	err := r.db.Model(&models.Task{}).
		Where("tasks.assigned_to = ? OR EXISTS (?)", userID, assigneeSubQuery).
		Order("tasks.created_at DESC").
		Preload("Creator").
		Preload("AssignedUser").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete hard-deletes a task together with its assignee and
// progress-update rows
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.TaskUpdate{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// ReplaceAssignees replaces the task's assignee set
func (r *GormTaskRepository) ReplaceAssignees(taskID uint64, userIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}

		if len(userIDs) == 0 {
			return nil
		}

		assignees := make([]models.TaskAssignee, len(userIDs))
		for i, userID := range userIDs {
			assignees[i] = models.TaskAssignee{
				TaskID: taskID,
				UserID: userID,
			}
		}

		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).
			Create(&assignees).Error
	})
}

// CreateUpdate appends a progress update and refreshes the task's
// updated_at timestamp
func (r *GormTaskRepository) CreateUpdate(update *models.TaskUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(update).Error; err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("id = ?", update.TaskID).
			Update("updated_at", time.Now()).Error
	})
}

// ListUpdates returns a task's progress updates, newest first
func (r *GormTaskRepository) ListUpdates(taskID uint64) ([]models.TaskUpdate, error) {
	var updates []models.TaskUpdate
	err := r.db.Where("task_id = ?", taskID).
		Order("created_at DESC").
		Preload("Author").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}

// HasUpdateSince reports whether the task has a progress update created
// at or after the given instant
func (r *GormTaskRepository) HasUpdateSince(taskID uint64, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.TaskUpdate{}).
		Where("task_id = ? AND created_at >= ?", taskID, since).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListActiveApproved returns approved tasks with status pending or in_progress
func (r *GormTaskRepository) ListActiveApproved() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("is_approved = ?", true).
		Where("status IN ?", []models.TaskStatus{models.TaskStatusPending, models.TaskStatusInProgress}).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountPendingForUser counts distinct pending tasks where the user is
// the primary assignee or in the assignee set
func (r *GormTaskRepository) CountPendingForUser(userID uint64) (int64, error) {
	var count int64

	assigneeSubQuery := r.db.Model(&models.TaskAssignee{}).
		Select("1").
		Where("task_assignees.task_id = tasks.id").
		Where("task_assignees.user_id = ?", userID)

	err := r.db.Model(&models.Task{}).
		Where("tasks.status = ?", models.TaskStatusPending).
		Where("tasks.assigned_to = ? OR EXISTS (?)", userID, assigneeSubQuery).
		Count(&count).Error

	return count, err
}
