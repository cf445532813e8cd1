package dto

import (
	"time"

	"github.com/farhanahmed/family-hub-api/internal/models"
)

// MessageDTO represents a chat message in API responses
type MessageDTO struct {
	ID             uint64    `json:"id"`
	Content        string    `json:"content"`
	MessageType    string    `json:"message_type"`
	FileURL        string    `json:"file_url,omitempty"`
	SenderID       uint64    `json:"sender_id"`
	SenderUsername string    `json:"sender_username,omitempty"`
	ConversationID uint64    `json:"conversation_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message) MessageDTO {
	return MessageDTO{
		ID:             message.ID,
		Content:        message.Content,
		MessageType:    message.MessageType,
		FileURL:        message.FileURL,
		SenderID:       message.SenderID,
		SenderUsername: message.Sender.Username,
		ConversationID: message.ConversationID,
		CreatedAt:      message.CreatedAt,
	}
}

// ConversationDTO represents a conversation in API responses
type ConversationDTO struct {
	ID           uint64       `json:"id"`
	Title        string       `json:"title,omitempty"`
	Participants []UserDTO    `json:"participants"`
	Messages     []MessageDTO `json:"messages"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ToConversationDTO converts a Conversation model to ConversationDTO
func ToConversationDTO(conversation models.Conversation) ConversationDTO {
	dto := ConversationDTO{
		ID:           conversation.ID,
		Title:        conversation.Title,
		Participants: make([]UserDTO, 0, len(conversation.Participants)),
		Messages:     make([]MessageDTO, 0, len(conversation.Messages)),
		CreatedAt:    conversation.CreatedAt,
		UpdatedAt:    conversation.UpdatedAt,
	}

	for _, participant := range conversation.Participants {
		if participant.User.ID != 0 {
			dto.Participants = append(dto.Participants, ToUserDTO(participant.User))
		}
	}
	for _, message := range conversation.Messages {
		dto.Messages = append(dto.Messages, ToMessageDTO(message))
	}

	return dto
}
