package repository

import (
	"time"

	"github.com/farhanahmed/family-hub-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConversationRepository is a GORM implementation of ConversationRepository
type GormConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &GormConversationRepository{db: db}
}

// Create creates a new conversation
func (r *GormConversationRepository) Create(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

// FindByID finds a conversation by ID with optional preloading
func (r *GormConversationRepository) FindByID(id uint64, preload ...string) (*models.Conversation, error) {
	query := r.db
	for _, relation := range preload {
		query = query.Preload(relation)
	}

	var conversation models.Conversation
	if err := query.First(&conversation, id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindByTitle finds a conversation by its exact title
func (r *GormConversationRepository) FindByTitle(title string, preload ...string) (*models.Conversation, error) {
	query := r.db
	for _, relation := range preload {
		query = query.Preload(relation)
	}

	var conversation models.Conversation
	if err := query.Where("title = ?", title).First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// ListForUser returns conversations the user participates in
func (r *GormConversationRepository) ListForUser(userID uint64, preload ...string) ([]models.Conversation, error) {
	query := r.db.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Order("conversations.updated_at DESC")
	for _, relation := range preload {
		query = query.Preload(relation)
	}

	var conversations []models.Conversation
	if err := query.Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

// AddParticipants adds members to a conversation, skipping pairs that
// already exist
func (r *GormConversationRepository) AddParticipants(conversationID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	participants := make([]models.ConversationParticipant, len(userIDs))
	for i, userID := range userIDs {
		participants[i] = models.ConversationParticipant{
			ConversationID: conversationID,
			UserID:         userID,
		}
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "conversation_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&participants).Error
}

// IsParticipant reports whether the user belongs to the conversation
func (r *GormConversationRepository) IsParticipant(conversationID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

// Touch refreshes the conversation's updated_at timestamp
func (r *GormConversationRepository) Touch(conversationID uint64) error {
	return r.db.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("updated_at", time.Now()).Error
}
