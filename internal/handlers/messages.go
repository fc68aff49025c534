package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"collablearn/internal/models"
	"collablearn/internal/repositories"
)

// MessagesHandler serves persisted conversation history.
type MessagesHandler struct {
	messageRepo repositories.MessageRepository
	dev         bool
}

// NewMessagesHandler builds a MessagesHandler.
func NewMessagesHandler(messageRepo repositories.MessageRepository, dev bool) *MessagesHandler {
	return &MessagesHandler{messageRepo: messageRepo, dev: dev}
}

// ListChats returns one summary per conversation the caller appears in.
func (h *MessagesHandler) ListChats(c *gin.Context) {
	chats, err := h.messageRepo.ListChatsForUser(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		serverError(c, h.dev, err, "failed to load chats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// GetChatMessages returns the full history of one conversation, ordered by
// time. Only the two participants encoded in the chat id may read it.
func (h *MessagesHandler) GetChatMessages(c *gin.Context) {
	chatID := c.Param("chat_id")
	if !models.ChatParticipant(chatID, c.GetInt("userID")) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a chat participant"})
		return
	}

	msgs, err := h.messageRepo.GetChatMessages(c.Request.Context(), chatID)
	if err != nil {
		serverError(c, h.dev, err, "failed to load messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
