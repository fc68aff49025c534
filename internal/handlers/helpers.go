package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDContextKey = "request_id"

func requestIDFromContext(c *gin.Context) string {
	if val, ok := c.Get(requestIDContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id
		}
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDContextKey, requestID)
	return requestID
}

func auditUserID(c *gin.Context) *string {
	if userID := c.GetInt("userID"); userID != 0 {
		value := strconv.Itoa(userID)
		return &value
	}
	return nil
}

// serverError writes a 500 response. The underlying error is only exposed
// in development mode.
func serverError(c *gin.Context, dev bool, err error, message string) {
	if dev && err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": message, "detail": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
