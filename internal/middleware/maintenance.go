package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"collablearn/internal/models"
	"collablearn/internal/repositories"
)

// MaintenanceGate returns 503 for non-admin traffic while maintenance mode
// is switched on. A settings read failure never takes the platform down.
func MaintenanceGate(settingsRepo repositories.SettingsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := settingsRepo.GetSettings(c.Request.Context())
		if err != nil {
			log.Printf("maintenance gate settings read failed: %v", err)
			c.Next()
			return
		}
		if settings.MaintenanceMode && c.GetString("userRole") != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "platform is under maintenance"})
			return
		}
		c.Next()
	}
}
