package middleware

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/api/response"
	"jobboard/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter counts requests per actor in the current one-minute window.
type Limiter interface {
	IncrementActorRateLimit(ctx context.Context, actorID string) (int64, error)
}

// RateLimit rejects actors over perMinute requests. A nil limiter or a
// non-positive limit disables it; limiter failures let the request through.
func RateLimit(limiter Limiter, perMinute int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := ActorID(c)
		if limiter == nil || perMinute <= 0 || actorID == "" {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := limiter.IncrementActorRateLimit(ctx, actorID)
		if err != nil {
			logger.Error("failed to check rate limit",
				zap.String("actor_id", actorID),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count > int64(perMinute) {
			logger.Warn("rate limit exceeded",
				zap.String("actor_id", actorID),
				zap.Int64("count", count),
			)
			c.Header("Retry-After", "60")
			response.Error(c, apperr.New(apperr.KindRateLimited, "middleware.RateLimit",
				fmt.Sprintf("rate limit exceeded: at most %d requests per minute", perMinute)))
			return
		}

		c.Next()
	}
}
