package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/streamseed/streamseed-api/internal/constants"
	"github.com/streamseed/streamseed-api/internal/database"
	apierrors "github.com/streamseed/streamseed-api/internal/errors"
	"github.com/streamseed/streamseed-api/internal/models"
)

// RequireProjectAccess loads the project scoped to the current user. A
// project owned by someone else answers 404, never 403, so existence does
// not leak across users.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().
			Where("id = ? AND user_id = ?", projectID, userID).
			First(&project).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// GetProject retrieves the scoped project from context
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := value.(models.Project)
	return project, ok
}
