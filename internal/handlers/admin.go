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

// AdminHandler serves the admin panel endpoints. All routes are mounted
// behind the admin role middleware.
type AdminHandler struct {
	userRepo     repositories.UserRepository
	postRepo     repositories.PostRepository
	skillRepo    repositories.SkillRepository
	bookingRepo  repositories.BookingRepository
	settingsRepo repositories.SettingsRepository
	audit        *telemetry.AuditEmitter
	dev          bool
}

// NewAdminHandler builds an AdminHandler.
func NewAdminHandler(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	skillRepo repositories.SkillRepository,
	bookingRepo repositories.BookingRepository,
	settingsRepo repositories.SettingsRepository,
	audit *telemetry.AuditEmitter,
	dev bool,
) *AdminHandler {
	return &AdminHandler{
		userRepo:     userRepo,
		postRepo:     postRepo,
		skillRepo:    skillRepo,
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		audit:        audit,
		dev:          dev,
	}
}

// ListUsers returns every account.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.ListUsers(c.Request.Context())
	if err != nil {
		serverError(c, h.dev, err, "failed to load users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// DeleteUser removes an account and everything cascading from it.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.userRepo.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		serverError(c, h.dev, err, "failed to delete user")
		return
	}

	h.audit.Emit(c.Request.Context(), "WARN", "user deleted by admin", requestIDFromContext(c), auditUserID(c))
	c.Status(http.StatusNoContent)
}

// DeletePost removes any forum post regardless of author.
func (h *AdminHandler) DeletePost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.postRepo.DeletePost(c.Request.Context(), postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		serverError(c, h.dev, err, "failed to delete post")
		return
	}

	h.audit.Emit(c.Request.Context(), "WARN", "post deleted by admin", requestIDFromContext(c), auditUserID(c))
	c.Status(http.StatusNoContent)
}

// GetSettings returns the platform settings.
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsRepo.GetSettings(c.Request.Context())
	if err != nil {
		serverError(c, h.dev, err, "failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings overwrites the platform settings.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settingsRepo.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		serverError(c, h.dev, err, "failed to update settings")
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "platform settings updated", requestIDFromContext(c), auditUserID(c))
	c.JSON(http.StatusOK, settings)
}

// Dashboard returns platform-wide counters.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.userRepo.CountUsers(ctx)
	if err != nil {
		serverError(c, h.dev, err, "failed to load dashboard")
		return
	}
	skills, err := h.skillRepo.CountSkills(ctx)
	if err != nil {
		serverError(c, h.dev, err, "failed to load dashboard")
		return
	}
	posts, err := h.postRepo.CountPosts(ctx)
	if err != nil {
		serverError(c, h.dev, err, "failed to load dashboard")
		return
	}
	bookings, err := h.bookingRepo.CountBookings(ctx)
	if err != nil {
		serverError(c, h.dev, err, "failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    users,
		"skills":   skills,
		"posts":    posts,
		"bookings": bookings,
	})
}
