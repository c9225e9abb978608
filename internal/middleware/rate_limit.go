package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siblingk/chatbot-sub001/internal/config"
)

// Limiter counts one request against a session's current window and reports
// the running total.
type Limiter interface {
	Hit(ctx context.Context, sessionID string) (int, error)
}

// RateLimit returns middleware that enforces the per-minute message limit
// for one session. A failing limiter lets the request through.
func RateLimit(limits Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := SessionID(c)

		count, err := limits.Hit(c.Request.Context(), sessionID)
		if err != nil {
			slog.Error("rate limit check failed", "error", err, "session_id", sessionID)
			c.Next()
			return
		}

		if count > config.RateLimitPerMinute {
			slog.Debug("rate limited", "session_id", sessionID, "count", count)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "You're sending messages a little too quickly. Give it a moment and try again.",
			})
			return
		}

		c.Next()
	}
}
