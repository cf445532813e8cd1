package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/farhanahmed/family-hub-api/internal/constants"
	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
)

func newChatService(t *testing.T) (*ChatService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	return NewChatService(
		repository.NewConversationRepository(db),
		repository.NewMessageRepository(db),
		repository.NewUserRepository(db),
	), db
}

func TestChatService_CreateConversation(t *testing.T) {
	service, db := newChatService(t)
	alice := seedUser(t, db, "alice", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)

	conversation, err := service.CreateConversation(alice, "Garden plans", []uint64{bob.ID, 99999})
	require.NoError(t, err)
	require.Equal(t, "Garden plans", conversation.Title)

	// The creator always joins; unknown participant IDs are skipped.
	require.Len(t, conversation.Participants, 2)
	memberIDs := map[uint64]bool{}
	for _, p := range conversation.Participants {
		memberIDs[p.UserID] = true
	}
	require.True(t, memberIDs[alice.ID])
	require.True(t, memberIDs[bob.ID])
}

func TestChatService_SendAndListMessages(t *testing.T) {
	service, db := newChatService(t)
	alice := seedUser(t, db, "alice", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)
	eve := seedUser(t, db, "eve", models.RoleUser)

	conversation, err := service.CreateConversation(alice, "", []uint64{bob.ID})
	require.NoError(t, err)

	_, err = service.SendMessage(alice, SendMessageInput{
		ConversationID: conversation.ID,
	})
	require.True(t, errors.Is(err, ErrMessageContentRequired))

	_, err = service.SendMessage(alice, SendMessageInput{
		ConversationID: 99999,
		Content:        "Anyone here?",
	})
	require.True(t, errors.Is(err, ErrConversationNotFound))

	_, err = service.SendMessage(eve, SendMessageInput{
		ConversationID: conversation.ID,
		Content:        "Let me in",
	})
	require.True(t, errors.Is(err, ErrNotConversationParticipant))

	first, err := service.SendMessage(alice, SendMessageInput{
		ConversationID: conversation.ID,
		Content:        "Seeds arrived",
	})
	require.NoError(t, err)
	require.Equal(t, constants.DefaultMessageType, first.MessageType)
	require.Equal(t, "alice", first.Sender.Username)

	_, err = service.SendMessage(bob, SendMessageInput{
		ConversationID: conversation.ID,
		Content:        "Planting on Saturday",
		MessageType:    "text",
	})
	require.NoError(t, err)

	messages, err := service.ListMessages(bob, conversation.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, "Seeds arrived", messages[0].Content)
	require.Equal(t, "Planting on Saturday", messages[1].Content)

	_, err = service.ListMessages(eve, conversation.ID)
	require.True(t, errors.Is(err, ErrNotConversationParticipant))
}

func TestChatService_SendMessageFeedsUnreadCounts(t *testing.T) {
	service, db := newChatService(t)
	alice := seedUser(t, db, "alice", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)

	conversation, err := service.CreateConversation(alice, "", []uint64{bob.ID})
	require.NoError(t, err)

	_, err = service.SendMessage(alice, SendMessageInput{
		ConversationID: conversation.ID,
		Content:        "Dinner at seven",
	})
	require.NoError(t, err)

	messageRepo := repository.NewMessageRepository(db)
	unread, err := messageRepo.CountUnreadForUser(bob.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, unread)

	unread, err = messageRepo.CountUnreadForUser(alice.ID)
	require.NoError(t, err)
	require.Zero(t, unread)
}

func TestChatService_ListConversations(t *testing.T) {
	service, db := newChatService(t)
	alice := seedUser(t, db, "alice", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)

	_, err := service.CreateConversation(alice, "Garden plans", []uint64{bob.ID})
	require.NoError(t, err)
	_, err = service.CreateConversation(bob, "Bob's corner", nil)
	require.NoError(t, err)

	conversations, err := service.ListConversations(alice)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	require.Equal(t, "Garden plans", conversations[0].Title)

	conversations, err = service.ListConversations(bob)
	require.NoError(t, err)
	require.Len(t, conversations, 2)
}

func TestChatService_TeamConversation(t *testing.T) {
	service, db := newChatService(t)
	alice := seedUser(t, db, "alice", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)

	inactive := seedUser(t, db, "gone", models.RoleUser)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	team, err := service.TeamConversation(alice)
	require.NoError(t, err)
	require.Equal(t, constants.TeamConversationTitle, team.Title)
	require.Len(t, team.Participants, 2)

	// A second call reuses the conversation and enrolls newer members.
	carol := seedUser(t, db, "carol", models.RoleUser)
	again, err := service.TeamConversation(bob)
	require.NoError(t, err)
	require.Equal(t, team.ID, again.ID)
	require.Len(t, again.Participants, 3)

	memberIDs := map[uint64]bool{}
	for _, p := range again.Participants {
		memberIDs[p.UserID] = true
	}
	require.True(t, memberIDs[carol.ID])
	require.False(t, memberIDs[inactive.ID])

	var total int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&total).Error)
	require.EqualValues(t, 1, total)
}
