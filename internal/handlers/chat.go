package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farhanahmed/family-hub-api/internal/dto"
	apierrors "github.com/farhanahmed/family-hub-api/internal/errors"
	"github.com/farhanahmed/family-hub-api/internal/middleware"
	"github.com/farhanahmed/family-hub-api/internal/services"
)

// ChatHandler coordinates conversation and message handlers.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// CreateConversation starts a conversation with the given participants.
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateConversationRequest struct {
		Title          string   `json:"title"`
		ParticipantIDs []uint64 `json:"participant_ids"`
	}

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	conversation, err := h.chatService.CreateConversation(user, req.Title, req.ParticipantIDs)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToConversationDTO(*conversation))
}

// ListConversations returns the current user's conversations.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	conversations, err := h.chatService.ListConversations(user)
	if err != nil {
		respondChatError(c, err)
		return
	}

	items := make([]dto.ConversationDTO, len(conversations))
	for i, conversation := range conversations {
		items[i] = dto.ToConversationDTO(conversation)
	}
	c.JSON(http.StatusOK, items)
}

// SendMessage posts a message to a conversation the current user
// belongs to.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SendMessageRequest struct {
		ConversationID uint64 `json:"conversation_id" binding:"required"`
		Content        string `json:"content" binding:"required"`
		MessageType    string `json:"message_type"`
		FileURL        string `json:"file_url"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.chatService.SendMessage(user, services.SendMessageInput{
		ConversationID: req.ConversationID,
		Content:        req.Content,
		MessageType:    req.MessageType,
		FileURL:        req.FileURL,
	})
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageDTO(*message))
}

// ListMessages returns a conversation's messages, oldest first.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	conversationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	messages, err := h.chatService.ListMessages(user, conversationID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	items := make([]dto.MessageDTO, len(messages))
	for i, message := range messages {
		items[i] = dto.ToMessageDTO(message)
	}
	c.JSON(http.StatusOK, items)
}

// TeamConversation returns the shared all-hands conversation, creating
// it on first use.
func (h *ChatHandler) TeamConversation(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	conversation, err := h.chatService.TeamConversation(user)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConversationDTO(*conversation))
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrConversationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotConversationParticipant):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMessageContentRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
