package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
)

func newNotificationService(t *testing.T) (*NotificationService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	return NewNotificationService(
		repository.NewMessageRepository(db),
		repository.NewTaskRepository(db),
		repository.NewAnnouncementRepository(db),
	), db
}

func seedMessage(t *testing.T, db *gorm.DB, conversationID, senderID uint64, content string) {
	t.Helper()

	require.NoError(t, db.Create(&models.Message{
		Content:        content,
		MessageType:    "text",
		SenderID:       senderID,
		ConversationID: conversationID,
	}).Error)
}

func TestNotificationService_Counts(t *testing.T) {
	service, db := newNotificationService(t)
	admin := seedUser(t, db, "root", models.RoleAdmin)
	alice := seedUser(t, db, "alice", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)

	conversation := &models.Conversation{Title: "general"}
	require.NoError(t, db.Create(conversation).Error)

	seedMessage(t, db, conversation.ID, bob.ID, "hello")
	seedMessage(t, db, conversation.ID, bob.ID, "anyone here?")
	seedMessage(t, db, conversation.ID, alice.ID, "hi bob")

	taskService := NewTaskService(repository.NewTaskRepository(db), repository.NewUserRepository(db))
	_, err := taskService.CreateTask(admin, CreateTaskInput{
		Title:      "Water the plants",
		AssignedTo: &alice.ID,
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Announcement{
		Title:     "Maintenance",
		Content:   "Water is off on Sunday",
		CreatedBy: admin.ID,
	}).Error)
	require.NoError(t, db.Create(&models.Announcement{
		Title:     "Welcome",
		Content:   "Say hi to Bob",
		CreatedBy: admin.ID,
	}).Error)

	counts, err := service.Counts(alice)
	require.NoError(t, err)
	require.Equal(t, int64(2), counts.Messages)
	require.Equal(t, int64(1), counts.Profile)
	require.Equal(t, int64(2), counts.Home)

	// Bob sees Alice's reply as unread and has no pending tasks.
	counts, err = service.Counts(bob)
	require.NoError(t, err)
	require.Equal(t, int64(1), counts.Messages)
	require.Equal(t, int64(0), counts.Profile)
	require.Equal(t, int64(2), counts.Home)
}

func TestNotificationService_MarkMessagesRead(t *testing.T) {
	service, db := newNotificationService(t)
	alice := seedUser(t, db, "alice", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)

	conversation := &models.Conversation{}
	require.NoError(t, db.Create(conversation).Error)
	seedMessage(t, db, conversation.ID, bob.ID, "hello")
	seedMessage(t, db, conversation.ID, bob.ID, "still there?")

	require.NoError(t, service.MarkMessagesRead(alice))

	counts, err := service.Counts(alice)
	require.NoError(t, err)
	require.Zero(t, counts.Messages)

	// The shared read flag also clears the sender's own view.
	counts, err = service.Counts(bob)
	require.NoError(t, err)
	require.Zero(t, counts.Messages)
}

func TestNotificationService_MarkAnnouncementsRead_Idempotent(t *testing.T) {
	service, db := newNotificationService(t)
	admin := seedUser(t, db, "root", models.RoleAdmin)
	alice := seedUser(t, db, "alice", models.RoleUser)

	require.NoError(t, db.Create(&models.Announcement{
		Title:     "Maintenance",
		Content:   "Water is off on Sunday",
		CreatedBy: admin.ID,
	}).Error)

	require.NoError(t, service.MarkAnnouncementsRead(alice))
	require.NoError(t, service.MarkAnnouncementsRead(alice))

	var readCount int64
	require.NoError(t, db.Model(&models.AnnouncementRead{}).
		Where("user_id = ?", alice.ID).
		Count(&readCount).Error)
	require.Equal(t, int64(1), readCount)

	counts, err := service.Counts(alice)
	require.NoError(t, err)
	require.Zero(t, counts.Home)

	// A new announcement becomes unread again and gets its own marker.
	require.NoError(t, db.Create(&models.Announcement{
		Title:     "Update",
		Content:   "Water is back",
		CreatedBy: admin.ID,
	}).Error)

	counts, err = service.Counts(alice)
	require.NoError(t, err)
	require.Equal(t, int64(1), counts.Home)

	require.NoError(t, service.MarkAnnouncementsRead(alice))

	require.NoError(t, db.Model(&models.AnnouncementRead{}).
		Where("user_id = ?", alice.ID).
		Count(&readCount).Error)
	require.Equal(t, int64(2), readCount)
}
