package repository

import (
	"time"

	"github.com/farhanahmed/family-hub-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username, compared case-insensitively
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email, compared case-insensitively
	FindByEmail(email string) (*models.User, error)

	// FirstAdmin returns the oldest account holding the admin role
	FirstAdmin() (*models.User, error)

	// List returns all users ordered by ID
	List() ([]models.User, error)

	// Count returns the total number of accounts
	Count() (int64, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete hard-deletes a user
	Delete(id uint64) error

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ids []uint64) (int64, error)

	// FilterExistingIDs returns the subset of the given IDs that exist
	FilterExistingIDs(ids []uint64) ([]uint64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status         *models.TaskStatus
	CreatorID      *uint64
	AssignedUserID *uint64
	Page           int
	PageSize       int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListForAssignee returns tasks where the user is the primary
	// assignee or a member of the assignee set
	ListForAssignee(userID uint64) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete hard-deletes a task together with its assignee and
	// progress-update rows
	Delete(id uint64) error

	// ReplaceAssignees replaces the task's assignee set
	ReplaceAssignees(taskID uint64, userIDs []uint64) error

	// CreateUpdate appends a progress update and refreshes the task's
	// updated_at timestamp
	CreateUpdate(update *models.TaskUpdate) error

	// ListUpdates returns a task's progress updates, newest first
	ListUpdates(taskID uint64) ([]models.TaskUpdate, error)

	// HasUpdateSince reports whether the task has a progress update
	// created at or after the given instant
	HasUpdateSince(taskID uint64, since time.Time) (bool, error)

	// ListActiveApproved returns approved tasks with status pending or
	// in_progress, the population visited by the alert sweep
	ListActiveApproved() ([]models.Task, error)

	// CountPendingForUser counts distinct pending tasks where the user
	// is the primary assignee or in the assignee set
	CountPendingForUser(userID uint64) (int64, error)
}

// AnnouncementRepository defines the interface for announcement data access
type AnnouncementRepository interface {
	Create(announcement *models.Announcement) error
	FindByID(id uint64) (*models.Announcement, error)
	List() ([]models.Announcement, error)
	Update(announcement *models.Announcement) error
	Delete(id uint64) error

	// Count returns the total number of announcements
	Count() (int64, error)

	// CountReadsByUser counts read markers the user has
	CountReadsByUser(userID uint64) (int64, error)

	// ListUnreadIDs returns IDs of announcements the user has not marked read
	ListUnreadIDs(userID uint64) ([]uint64, error)

	// CreateReads inserts read markers, skipping pairs that already exist
	CreateReads(reads []models.AnnouncementRead) error
}

// ProjectRepository defines the interface for project data access.
// Deletes are soft; lookups skip deleted rows unless noted.
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a live project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByIDForOwner finds a live project owned by the given user
	FindByIDForOwner(id, ownerID uint64) (*models.Project, error)

	// FindByIDUnscoped finds a project regardless of deletion state
	FindByIDUnscoped(id uint64) (*models.Project, error)

	// ListByOwner returns the user's live projects ordered by ID
	ListByOwner(ownerID uint64) ([]models.Project, error)

	// Update persists changes to a project
	Update(project *models.Project) error

	// SoftDelete marks a project deleted without removing the row
	SoftDelete(id uint64) error

	// Restore clears a project's deletion mark
	Restore(id uint64) error
}

// ConversationRepository defines the interface for conversation data access
type ConversationRepository interface {
	// Create creates a new conversation
	Create(conversation *models.Conversation) error

	// FindByID finds a conversation by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Conversation, error)

	// FindByTitle finds a conversation by its exact title
	FindByTitle(title string, preload ...string) (*models.Conversation, error)

	// ListForUser returns conversations the user participates in
	ListForUser(userID uint64, preload ...string) ([]models.Conversation, error)

	// AddParticipants adds members to a conversation, skipping pairs
	// that already exist
	AddParticipants(conversationID uint64, userIDs []uint64) error

	// IsParticipant reports whether the user belongs to the conversation
	IsParticipant(conversationID, userID uint64) (bool, error)

	// Touch refreshes the conversation's updated_at timestamp
	Touch(conversationID uint64) error
}

// MessageRepository defines the interface for chat message data access
type MessageRepository interface {
	// Create appends a chat message
	Create(message *models.Message) error

	// ListByConversation returns a conversation's messages, oldest first
	ListByConversation(conversationID uint64) ([]models.Message, error)

	// CountUnreadForUser counts messages not authored by the user and
	// not yet marked read
	CountUnreadForUser(userID uint64) (int64, error)

	// MarkReadForUser flips is_read on all messages not authored by the user
	MarkReadForUser(userID uint64) error
}

// RoleRequestRepository defines the interface for role request data access
type RoleRequestRepository interface {
	Create(request *models.RoleRequest) error
	FindByID(id uint64) (*models.RoleRequest, error)
	List() ([]models.RoleRequest, error)
	Update(request *models.RoleRequest) error
}
