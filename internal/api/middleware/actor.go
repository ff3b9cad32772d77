package middleware

import (
	"strings"

	"jobboard/internal/api/response"
	"jobboard/internal/apperr"
	"jobboard/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	actorIDKey   = "actor_id"
	actorRoleKey = "actor_role"
)

// Actor reads the authenticated caller set by the upstream gateway.
// Requests without a user id are rejected.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if id == "" {
			response.Error(c, apperr.New(apperr.KindUnauthorized, "middleware.Actor", "authentication required"))
			return
		}

		role := models.UserRole(strings.ToUpper(strings.TrimSpace(c.GetHeader(HeaderUserRole))))

		c.Set(actorIDKey, id)
		c.Set(actorRoleKey, role)
		c.Next()
	}
}

// RequireRole lets through only actors holding one of roles.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		if !allowed[ActorRole(c)] {
			response.Error(c, apperr.New(apperr.KindForbidden, "middleware.RequireRole", "access denied"))
			return
		}
		c.Next()
	}
}

func ActorID(c *gin.Context) string {
	return c.GetString(actorIDKey)
}

func ActorRole(c *gin.Context) models.UserRole {
	role, _ := c.Get(actorRoleKey)
	r, _ := role.(models.UserRole)
	return r
}
