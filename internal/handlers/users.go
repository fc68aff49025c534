package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"collablearn/internal/repositories"
)

// UsersHandler serves public profiles and profile updates.
type UsersHandler struct {
	userRepo repositories.UserRepository
	dev      bool
}

// NewUsersHandler builds a UsersHandler.
func NewUsersHandler(userRepo repositories.UserRepository, dev bool) *UsersHandler {
	return &UsersHandler{userRepo: userRepo, dev: dev}
}

// ListUsers returns all profiles.
func (h *UsersHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.ListUsers(c.Request.Context())
	if err != nil {
		serverError(c, h.dev, err, "failed to load users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns one profile.
func (h *UsersHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userRepo.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		serverError(c, h.dev, err, "failed to load user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe updates the caller's profile fields.
func (h *UsersHandler) UpdateMe(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		Bio       string `json:"bio"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.UpdateProfile(c.Request.Context(), c.GetInt("userID"), req.Name, req.Bio, req.AvatarURL)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		serverError(c, h.dev, err, "failed to update profile")
		return
	}
	c.JSON(http.StatusOK, user)
}
