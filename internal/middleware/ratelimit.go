package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"collablearn/internal/observability"
)

// LoginRateLimiter throttles authentication attempts per client IP using a
// fixed redis window. With no redis client configured the limiter is a
// pass-through; an unavailable redis fails open, never blocking logins.
type LoginRateLimiter struct {
	rdb      *redis.Client
	limit    int
	window   time.Duration
	keySpace string
}

// NewLoginRateLimiter constructs a limiter allowing limit attempts per window.
func NewLoginRateLimiter(rdb *redis.Client, limit int, window time.Duration) *LoginRateLimiter {
	return &LoginRateLimiter{rdb: rdb, limit: limit, window: window, keySpace: "ratelimit:login:"}
}

// Handler is the gin middleware entry point.
func (l *LoginRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.rdb == nil {
			c.Next()
			return
		}

		key := l.keySpace + observability.IPFromRequest(c.Request)
		count, err := l.rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Printf("rate limiter redis error: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			l.rdb.Expire(c.Request.Context(), key, l.window)
		}
		if count > int64(l.limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(l.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
			return
		}
		c.Next()
	}
}
