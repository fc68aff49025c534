package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"collablearn/internal/models"
	"collablearn/internal/repositories"
	"collablearn/internal/telemetry"
)

// PostsHandler manages the community forum endpoints.
type PostsHandler struct {
	postRepo repositories.PostRepository
	audit    *telemetry.AuditEmitter
	dev      bool
}

// NewPostsHandler builds a PostsHandler.
func NewPostsHandler(postRepo repositories.PostRepository, audit *telemetry.AuditEmitter, dev bool) *PostsHandler {
	return &PostsHandler{postRepo: postRepo, audit: audit, dev: dev}
}

// CreatePost stores a forum post authored by the caller.
func (h *PostsHandler) CreatePost(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postRepo.CreatePost(c.Request.Context(), c.GetInt("userID"), req.Title, req.Body)
	if err != nil {
		serverError(c, h.dev, err, "failed to create post")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ListPosts returns the forum feed, newest first.
func (h *PostsHandler) ListPosts(c *gin.Context) {
	posts, err := h.postRepo.ListPosts(c.Request.Context())
	if err != nil {
		serverError(c, h.dev, err, "failed to load posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost returns one forum post.
func (h *PostsHandler) GetPost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.postRepo.GetPost(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		serverError(c, h.dev, err, "failed to load post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post. Only the author or an admin may delete.
func (h *PostsHandler) DeletePost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.postRepo.GetPost(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		serverError(c, h.dev, err, "failed to load post")
		return
	}

	if post.AuthorID != c.GetInt("userID") && c.GetString("userRole") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the post author"})
		return
	}

	if err := h.postRepo.DeletePost(c.Request.Context(), postID); err != nil {
		serverError(c, h.dev, err, "failed to delete post")
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "post deleted", requestIDFromContext(c), auditUserID(c))
	c.Status(http.StatusNoContent)
}
