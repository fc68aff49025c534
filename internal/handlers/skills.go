package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"collablearn/internal/models"
	"collablearn/internal/repositories"
)

// SkillsHandler manages the skill catalog endpoints.
type SkillsHandler struct {
	skillRepo repositories.SkillRepository
	dev       bool
}

// NewSkillsHandler builds a SkillsHandler.
func NewSkillsHandler(skillRepo repositories.SkillRepository, dev bool) *SkillsHandler {
	return &SkillsHandler{skillRepo: skillRepo, dev: dev}
}

// CreateSkill publishes a skill owned by the caller.
func (h *SkillsHandler) CreateSkill(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skill, err := h.skillRepo.CreateSkill(c.Request.Context(), c.GetInt("userID"), req.Title, req.Description, req.Category)
	if err != nil {
		serverError(c, h.dev, err, "failed to create skill")
		return
	}
	c.JSON(http.StatusCreated, skill)
}

// ListSkills returns the catalog, optionally filtered by ?category=.
func (h *SkillsHandler) ListSkills(c *gin.Context) {
	skills, err := h.skillRepo.ListSkills(c.Request.Context(), c.Query("category"))
	if err != nil {
		serverError(c, h.dev, err, "failed to load skills")
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// GetSkill returns one catalog entry.
func (h *SkillsHandler) GetSkill(c *gin.Context) {
	skillID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skill id"})
		return
	}

	skill, err := h.skillRepo.GetSkill(c.Request.Context(), skillID)
	if err != nil {
		if errors.Is(err, repositories.ErrSkillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "skill not found"})
			return
		}
		serverError(c, h.dev, err, "failed to load skill")
		return
	}
	c.JSON(http.StatusOK, skill)
}

// DeleteSkill removes a skill. Only the owner or an admin may delete.
func (h *SkillsHandler) DeleteSkill(c *gin.Context) {
	skillID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skill id"})
		return
	}

	skill, err := h.skillRepo.GetSkill(c.Request.Context(), skillID)
	if err != nil {
		if errors.Is(err, repositories.ErrSkillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "skill not found"})
			return
		}
		serverError(c, h.dev, err, "failed to load skill")
		return
	}

	if skill.OwnerID != c.GetInt("userID") && c.GetString("userRole") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the skill owner"})
		return
	}

	if err := h.skillRepo.DeleteSkill(c.Request.Context(), skillID); err != nil {
		serverError(c, h.dev, err, "failed to delete skill")
		return
	}
	c.Status(http.StatusNoContent)
}
