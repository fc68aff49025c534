package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"collablearn/internal/mocks"
	"collablearn/internal/models"
)

func setupMessagesRouter(handler *MessagesHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/chats", handler.ListChats)
	r.GET("/chats/:chat_id/messages", handler.GetChatMessages)
	return r
}

func TestListChatsForUser(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	handler := NewMessagesHandler(messageRepo, true)
	router := setupMessagesRouter(handler)

	messageRepo.On("ListChatsForUser", mock.Anything, 1).
		Return([]models.ChatSummary{{ChatID: "1_2", PartnerID: 2}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	messageRepo.AssertExpectations(t)
}

func TestGetChatMessagesAsParticipant(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	handler := NewMessagesHandler(messageRepo, true)
	router := setupMessagesRouter(handler)

	messageRepo.On("GetChatMessages", mock.Anything, "1_2").
		Return([]models.Message{{ID: 1, ChatID: "1_2", SenderID: 2, Content: "hi"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/chats/1_2/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	messageRepo.AssertExpectations(t)
}

func TestGetChatMessagesForbiddenForOutsider(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	handler := NewMessagesHandler(messageRepo, true)
	router := setupMessagesRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/chats/2_3/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	messageRepo.AssertNotCalled(t, "GetChatMessages")
}
