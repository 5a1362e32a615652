package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireUser identifies the caller by the user-id header the client sends,
// falling back to the login session.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := strings.TrimSpace(c.GetHeader(constants.HeaderUserID)); header != "" {
			userID, err := strconv.ParseUint(header, 10, 64)
			if err != nil || userID == 0 {
				apierrors.Unauthorized(c, "Invalid user ID")
				c.Abort()
				return
			}
			c.Set(constants.ContextKeyUserID, userID)
			c.Next()
			return
		}

		userID := sessions.Default(c).Get(constants.ContextKeyUserID)
		if userID == nil {
			apierrors.Unauthorized(c, "User ID required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
