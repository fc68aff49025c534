package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"collablearn/internal/mocks"
	"collablearn/internal/models"
)

func setupPostsRouter(handler *PostsHandler, userID int, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	})
	r.POST("/posts", handler.CreatePost)
	r.GET("/posts", handler.ListPosts)
	r.GET("/posts/:id", handler.GetPost)
	r.DELETE("/posts/:id", handler.DeletePost)
	return r
}

func TestCreatePostSuccess(t *testing.T) {
	postRepo := new(mocks.PostRepositoryMock)
	handler := NewPostsHandler(postRepo, nil, true)
	router := setupPostsRouter(handler, 1, models.RoleUser)

	postRepo.On("CreatePost", mock.Anything, 1, "Looking for a guitar teacher", "anyone around?").
		Return(models.Post{ID: 5, AuthorID: 1, Title: "Looking for a guitar teacher"}, nil).Once()

	body := bytes.NewBufferString(`{"title":"Looking for a guitar teacher","body":"anyone around?"}`)
	req := httptest.NewRequest(http.MethodPost, "/posts", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	postRepo.AssertExpectations(t)
}

func TestDeletePostAsAuthor(t *testing.T) {
	postRepo := new(mocks.PostRepositoryMock)
	handler := NewPostsHandler(postRepo, nil, true)
	router := setupPostsRouter(handler, 1, models.RoleUser)

	postRepo.On("GetPost", mock.Anything, 5).
		Return(models.Post{ID: 5, AuthorID: 1}, nil).Once()
	postRepo.On("DeletePost", mock.Anything, 5).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/posts/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	postRepo.AssertExpectations(t)
}

func TestDeletePostNotAuthor(t *testing.T) {
	postRepo := new(mocks.PostRepositoryMock)
	handler := NewPostsHandler(postRepo, nil, true)
	router := setupPostsRouter(handler, 2, models.RoleUser)

	postRepo.On("GetPost", mock.Anything, 5).
		Return(models.Post{ID: 5, AuthorID: 1}, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/posts/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	postRepo.AssertNotCalled(t, "DeletePost")
}

func TestDeletePostAsAdmin(t *testing.T) {
	postRepo := new(mocks.PostRepositoryMock)
	handler := NewPostsHandler(postRepo, nil, true)
	router := setupPostsRouter(handler, 2, models.RoleAdmin)

	postRepo.On("GetPost", mock.Anything, 5).
		Return(models.Post{ID: 5, AuthorID: 1}, nil).Once()
	postRepo.On("DeletePost", mock.Anything, 5).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/posts/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	postRepo.AssertExpectations(t)
}
