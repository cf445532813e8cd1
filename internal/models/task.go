package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusOnHold     TaskStatus = "on_hold"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusOnHold, TaskStatusCompleted:
		return true
	}
	return false
}

// IsValid reports whether the priority is one of the known levels.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type TimelineStatus string

const (
	TimelinePending   TimelineStatus = "pending"
	TimelineConfirmed TimelineStatus = "confirmed"
	TimelineRejected  TimelineStatus = "rejected"
)

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Links       string       `gorm:"type:text" json:"links,omitempty"`

	AssignedTo *uint64 `gorm:"index" json:"assigned_to"`
	CreatedBy  uint64  `gorm:"not null;index" json:"created_by"`

	IsApproved bool       `gorm:"not null;default:false" json:"is_approved"`
	Deadline   *time.Time `json:"deadline"`

	// Timeline negotiation: the assignee commits to an estimate before
	// the task is considered active.
	EstimatedDays       *int           `json:"estimated_days"`
	TimelineStatus      TimelineStatus `gorm:"type:varchar(50);not null;default:'pending'" json:"timeline_status"`
	TimelineNotes       string         `gorm:"type:text" json:"timeline_notes,omitempty"`
	ProposedDeadline    *time.Time     `json:"proposed_deadline"`
	TimelineConfirmedAt *time.Time     `json:"timeline_confirmed_at"`

	// Incremented by the daily sweep when no progress update landed
	// within the last 24 hours.
	AlertCount int `gorm:"not null;default:0" json:"alert_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Creator      User           `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	AssignedUser *User          `gorm:"foreignKey:AssignedTo" json:"assigned_user,omitempty"`
	Assignees    []TaskAssignee `gorm:"foreignKey:TaskID" json:"assignees,omitempty"`
	Updates      []TaskUpdate   `gorm:"foreignKey:TaskID" json:"updates,omitempty"`
}
