package services

import (
	"fmt"

	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
)

// NotificationCounts holds per-user unread counters keyed by the app
// area they surface in.
type NotificationCounts struct {
	Messages int64 `json:"messages"`
	Profile  int64 `json:"profile"`
	Home     int64 `json:"home"`
}

// NotificationService aggregates unread counts across messages, pending
// tasks and announcements.
//
// The message counter filters only on sender and the shared is_read
// flag; it does not confirm the user participates in the message's
// conversation. That matches the modeled behavior and is imprecise for
// group conversations.
type NotificationService struct {
	messageRepo      repository.MessageRepository
	taskRepo         repository.TaskRepository
	announcementRepo repository.AnnouncementRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	messageRepo repository.MessageRepository,
	taskRepo repository.TaskRepository,
	announcementRepo repository.AnnouncementRepository,
) *NotificationService {
	return &NotificationService{
		messageRepo:      messageRepo,
		taskRepo:         taskRepo,
		announcementRepo: announcementRepo,
	}
}

// Counts computes the user's unread counters: messages not authored by
// the user and unread, pending tasks assigned to the user, and
// announcements without a read marker.
func (s *NotificationService) Counts(user *models.User) (*NotificationCounts, error) {
	messages, err := s.messageRepo.CountUnreadForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}

	pendingTasks, err := s.taskRepo.CountPendingForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending tasks: %w", err)
	}

	total, err := s.announcementRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count announcements: %w", err)
	}
	read, err := s.announcementRepo.CountReadsByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count read announcements: %w", err)
	}

	unreadAnnouncements := total - read
	if unreadAnnouncements < 0 {
		unreadAnnouncements = 0
	}

	return &NotificationCounts{
		Messages: messages,
		Profile:  pendingTasks,
		Home:     unreadAnnouncements,
	}, nil
}

// MarkMessagesRead flips is_read on every message not authored by the
// user. The flag is shared per message, not per member, so this is a
// broad mark-all rather than a per-conversation operation.
func (s *NotificationService) MarkMessagesRead(user *models.User) error {
	if err := s.messageRepo.MarkReadForUser(user.ID); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// MarkAnnouncementsRead inserts a read marker for every announcement the
// user has not yet read. Running it again with no new announcements is
// a no-op.
func (s *NotificationService) MarkAnnouncementsRead(user *models.User) error {
	unreadIDs, err := s.announcementRepo.ListUnreadIDs(user.ID)
	if err != nil {
		return fmt.Errorf("failed to list unread announcements: %w", err)
	}

	if len(unreadIDs) == 0 {
		return nil
	}

	reads := make([]models.AnnouncementRead, len(unreadIDs))
	for i, id := range unreadIDs {
		reads[i] = models.AnnouncementRead{
			AnnouncementID: id,
			UserID:         user.ID,
		}
	}

	if err := s.announcementRepo.CreateReads(reads); err != nil {
		return fmt.Errorf("failed to create read markers: %w", err)
	}

	return nil
}
