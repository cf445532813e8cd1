package models

import "time"

type Conversation struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255)" json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Messages     []Message                 `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
}

type ConversationParticipant struct {
	ConversationID uint64 `gorm:"primarykey" json:"conversation_id"`
	UserID         uint64 `gorm:"primarykey" json:"user_id"`

	// Relations
	Conversation Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Message carries a single read flag shared by every member of the
// conversation rather than a per-recipient marker. Unread counting and
// mark-read are therefore approximate for group conversations.
type Message struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	MessageType    string    `gorm:"type:varchar(50);not null;default:'text'" json:"message_type"`
	FileURL        string    `gorm:"type:varchar(500)" json:"file_url,omitempty"`
	SenderID       uint64    `gorm:"not null;index" json:"sender_id"`
	ConversationID uint64    `gorm:"not null;index" json:"conversation_id"`
	IsRead         bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	Sender       User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Conversation Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
}
