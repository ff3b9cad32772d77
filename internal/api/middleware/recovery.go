package middleware

import (
	"errors"

	"jobboard/internal/api/response"
	"jobboard/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery middleware for panic handling
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.Stack("stack"),
					zap.String("path", c.Request.URL.Path),
					zap.String("actor_id", ActorID(c)),
				)

				response.Error(c, apperr.Internal("middleware.Recovery", errors.New("panic")))
			}
		}()

		c.Next()
	}
}
