package repository

import (
	"github.com/farhanahmed/family-hub-api/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create appends a chat message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// ListByConversation returns a conversation's messages, oldest first
func (r *GormMessageRepository) ListByConversation(conversationID uint64) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CountUnreadForUser counts messages not authored by the user and not
// yet marked read. Conversation membership is not consulted: the read
// flag lives on the message itself, shared across all members.
func (r *GormMessageRepository) CountUnreadForUser(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("sender_id <> ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkReadForUser flips is_read on all messages not authored by the user
func (r *GormMessageRepository) MarkReadForUser(userID uint64) error {
	return r.db.Model(&models.Message{}).
		Where("sender_id <> ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
