package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/streamseed/streamseed-api/internal/constants"
	"github.com/streamseed/streamseed-api/internal/database"
	apierrors "github.com/streamseed/streamseed-api/internal/errors"
	"github.com/streamseed/streamseed-api/internal/models"
)

// RequireAuth checks the session and verifies the user still exists and is
// active. A session pointing at a deleted or deactivated account is as good
// as no session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		rawUserID := session.Get(constants.ContextKeyUserID)

		if rawUserID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, ok := toUint64(rawUserID)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().
			Where("id = ? AND is_active = ?", userID, true).
			First(&user).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
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
	return toUint64(userID)
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
