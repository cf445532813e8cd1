package services

import (
	"errors"
	"fmt"

	"github.com/farhanahmed/family-hub-api/internal/constants"
	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound       = errors.New("conversation not found")
	ErrNotConversationParticipant = errors.New("user is not a participant of this conversation")
	ErrMessageContentRequired     = errors.New("message content is required")
)

// ChatService handles conversations and their messages. The creator of
// a conversation always joins it; participant IDs that do not match an
// account are silently skipped.
type ChatService struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	userRepo         repository.UserRepository
}

// NewChatService creates a new ChatService
func NewChatService(conversationRepo repository.ConversationRepository, messageRepo repository.MessageRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
	}
}

func conversationPreloads() []string {
	return []string{"Participants", "Participants.User", "Messages", "Messages.Sender"}
}

// CreateConversation starts a conversation between the actor and the
// given participants.
func (s *ChatService) CreateConversation(actor *models.User, title string, participantIDs []uint64) (*models.Conversation, error) {
	conversation := &models.Conversation{Title: title}
	if err := s.conversationRepo.Create(conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	existing, err := s.userRepo.FilterExistingIDs(uniqueUint64(participantIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to verify participants: %w", err)
	}

	members := append(existing, actor.ID)
	if err := s.conversationRepo.AddParticipants(conversation.ID, uniqueUint64(members)); err != nil {
		return nil, fmt.Errorf("failed to add participants: %w", err)
	}

	return s.conversationRepo.FindByID(conversation.ID, conversationPreloads()...)
}

// ListConversations returns the actor's conversations, most recently
// active first.
func (s *ChatService) ListConversations(actor *models.User) ([]models.Conversation, error) {
	conversations, err := s.conversationRepo.ListForUser(actor.ID, conversationPreloads()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// SendMessageInput represents input for sending a chat message
type SendMessageInput struct {
	ConversationID uint64
	Content        string
	MessageType    string
	FileURL        string
}

// SendMessage appends a message to a conversation the actor belongs to
// and refreshes the conversation's activity timestamp.
func (s *ChatService) SendMessage(actor *models.User, input SendMessageInput) (*models.Message, error) {
	if input.Content == "" {
		return nil, ErrMessageContentRequired
	}
	if input.MessageType == "" {
		input.MessageType = constants.DefaultMessageType
	}

	if err := s.ensureParticipant(actor, input.ConversationID); err != nil {
		return nil, err
	}

	message := &models.Message{
		Content:        input.Content,
		MessageType:    input.MessageType,
		FileURL:        input.FileURL,
		SenderID:       actor.ID,
		ConversationID: input.ConversationID,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if err := s.conversationRepo.Touch(input.ConversationID); err != nil {
		return nil, fmt.Errorf("failed to touch conversation: %w", err)
	}

	message.Sender = *actor
	return message, nil
}

// ListMessages returns a conversation's messages, oldest first. The
// actor must be a participant.
func (s *ChatService) ListMessages(actor *models.User, conversationID uint64) ([]models.Message, error) {
	if err := s.ensureParticipant(actor, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByConversation(conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// TeamConversation returns the shared all-hands conversation, creating
// it on first use. Every active account is enrolled on each call, so
// members added later join automatically.
func (s *ChatService) TeamConversation(actor *models.User) (*models.Conversation, error) {
	conversation, err := s.conversationRepo.FindByTitle(constants.TeamConversationTitle)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		conversation = &models.Conversation{Title: constants.TeamConversationTitle}
		if err := s.conversationRepo.Create(conversation); err != nil {
			return nil, fmt.Errorf("failed to create team conversation: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to find team conversation: %w", err)
	}

	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	memberIDs := make([]uint64, 0, len(users))
	for _, user := range users {
		if user.IsActive {
			memberIDs = append(memberIDs, user.ID)
		}
	}

	if err := s.conversationRepo.AddParticipants(conversation.ID, memberIDs); err != nil {
		return nil, fmt.Errorf("failed to enroll team members: %w", err)
	}

	return s.conversationRepo.FindByID(conversation.ID, conversationPreloads()...)
}

// ensureParticipant verifies the conversation exists and the actor
// belongs to it.
func (s *ChatService) ensureParticipant(actor *models.User, conversationID uint64) error {
	if _, err := s.conversationRepo.FindByID(conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConversationNotFound
		}
		return fmt.Errorf("failed to find conversation: %w", err)
	}

	member, err := s.conversationRepo.IsParticipant(conversationID, actor.ID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return ErrNotConversationParticipant
	}

	return nil
}
