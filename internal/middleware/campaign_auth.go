package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/streamseed/streamseed-api/internal/constants"
	"github.com/streamseed/streamseed-api/internal/database"
	apierrors "github.com/streamseed/streamseed-api/internal/errors"
	"github.com/streamseed/streamseed-api/internal/models"
)

// RequireCampaignAccess loads the campaign joined to its owning project in
// one query, scoped to the current user. Reachability through the ownership
// chain is the only authorization check; a foreign campaign answers 404.
func RequireCampaignAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid campaign ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var campaign models.Campaign
		if err := database.GetDB().
			Joins("JOIN projects ON projects.id = campaigns.project_id AND projects.deleted_at IS NULL").
			Where("projects.user_id = ?", userID).
			Where("campaigns.id = ?", campaignID).
			Preload("Project").
			First(&campaign).Error; err != nil {
			apierrors.NotFound(c, "Campaign not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCampaign, campaign)
		c.Next()
	}
}

// GetCampaign retrieves the scoped campaign from context
func GetCampaign(c *gin.Context) (models.Campaign, bool) {
	value, exists := c.Get(constants.ContextKeyCampaign)
	if !exists {
		return models.Campaign{}, false
	}
	campaign, ok := value.(models.Campaign)
	return campaign, ok
}
