package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"collablearn/internal/auth"
	"collablearn/internal/repositories"
	"collablearn/internal/telemetry"
)

// AuthHandler manages registration and login.
type AuthHandler struct {
	userRepo     repositories.UserRepository
	settingsRepo repositories.SettingsRepository
	tokens       *auth.Manager
	audit        *telemetry.AuditEmitter
	dev          bool
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(userRepo repositories.UserRepository, settingsRepo repositories.SettingsRepository, tokens *auth.Manager, audit *telemetry.AuditEmitter, dev bool) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, settingsRepo: settingsRepo, tokens: tokens, audit: audit, dev: dev}
}

// Register creates an account and returns an access token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settingsRepo.GetSettings(c.Request.Context())
	if err == nil && settings.RegistrationClosed {
		c.JSON(http.StatusForbidden, gin.H{"error": "registration is closed"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(c, h.dev, err, "failed to create account")
		return
	}

	user, err := h.userRepo.CreateUser(c.Request.Context(), strings.ToLower(req.Email), string(hash), req.Name)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		serverError(c, h.dev, err, "failed to create account")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		serverError(c, h.dev, err, "failed to issue token")
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "user registered", requestIDFromContext(c), auditUserID(c))
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// Login verifies credentials and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.GetUserByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		serverError(c, h.dev, err, "login failed")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		serverError(c, h.dev, err, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
