package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/streamseed/streamseed-api/internal/dto"
	"github.com/streamseed/streamseed-api/internal/errors"
	"github.com/streamseed/streamseed-api/internal/middleware"
	"github.com/streamseed/streamseed-api/internal/services"
)

// EngagementHandler handles creator profiles, campaign invitations and
// campaign metrics
type EngagementHandler struct {
	engagementService *services.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(engagementService *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// CreateCreatorRequest represents the creator profile request body
type CreateCreatorRequest struct {
	Bio         string `json:"bio"`
	SocialLinks string `json:"social_links"`
}

// InviteCreatorRequest represents the invitation request body
type InviteCreatorRequest struct {
	CreatorID uint64 `json:"creator_id" binding:"required"`
}

// RespondInviteRequest represents the invitation response body
type RespondInviteRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// RecordMetricRequest represents the metric ingestion request body
type RecordMetricRequest struct {
	MetricType string `json:"metric_type" binding:"required"`
	Value      int64  `json:"value"`
}

// CreateCreator handles POST /api/creators
func (h *EngagementHandler) CreateCreator(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var req CreateCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	creator, err := h.engagementService.CreateCreatorProfile(services.CreateCreatorInput{
		UserID:      userID,
		Bio:         req.Bio,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		h.respondEngagementError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"creator": dto.ToCreatorDTO(*creator)})
}

// GetCreator handles GET /api/creators/:id. Creator profiles are public to
// any authenticated user; they exist to be discovered.
func (h *EngagementHandler) GetCreator(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid creator ID")
		return
	}

	creator, err := h.engagementService.GetCreator(id)
	if err != nil {
		h.respondEngagementError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"creator": dto.ToCreatorDTO(*creator)})
}

// InviteCreator handles POST /api/campaigns/:id/invites
func (h *EngagementHandler) InviteCreator(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	campaign, ok := middleware.GetCampaign(c)
	if !ok {
		errors.NotFound(c, "Campaign not found")
		return
	}

	var req InviteCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invite, err := h.engagementService.InviteCreator(services.InviteCreatorInput{
		UserID:     userID,
		CampaignID: campaign.ID,
		CreatorID:  req.CreatorID,
	})
	if err != nil {
		h.respondEngagementError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invite": dto.ToInviteDTO(*invite)})
}

// ListInvites handles GET /api/campaigns/:id/invites
func (h *EngagementHandler) ListInvites(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	campaign, ok := middleware.GetCampaign(c)
	if !ok {
		errors.NotFound(c, "Campaign not found")
		return
	}

	invites, err := h.engagementService.ListInvites(userID, campaign.ID)
	if err != nil {
		h.respondEngagementError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invites": dto.ToInviteDTOs(invites)})
}

// RespondToInvite handles POST /api/invites/:id/respond. Only the invited
// creator's user can answer.
func (h *EngagementHandler) RespondToInvite(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	inviteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid invite ID")
		return
	}

	var req RespondInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invite, err := h.engagementService.RespondToInvite(userID, inviteID, *req.Accept)
	if err != nil {
		h.respondEngagementError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invite": dto.ToInviteDTO(*invite)})
}

// RecordMetric handles POST /api/campaigns/:id/metrics
func (h *EngagementHandler) RecordMetric(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	campaign, ok := middleware.GetCampaign(c)
	if !ok {
		errors.NotFound(c, "Campaign not found")
		return
	}

	var req RecordMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	metric, err := h.engagementService.RecordMetric(services.RecordMetricInput{
		UserID:     userID,
		CampaignID: campaign.ID,
		MetricType: req.MetricType,
		Value:      req.Value,
	})
	if err != nil {
		h.respondEngagementError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"metric": dto.ToMetricDTO(*metric)})
}

// ListMetrics handles GET /api/campaigns/:id/metrics
func (h *EngagementHandler) ListMetrics(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	campaign, ok := middleware.GetCampaign(c)
	if !ok {
		errors.NotFound(c, "Campaign not found")
		return
	}

	metrics, err := h.engagementService.ListMetrics(userID, campaign.ID)
	if err != nil {
		h.respondEngagementError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": dto.ToMetricDTOs(metrics)})
}

func (h *EngagementHandler) respondEngagementError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, services.ErrCreatorNotFound):
		errors.NotFound(c, "Creator not found")
	case stderrors.Is(err, services.ErrCampaignNotFound):
		errors.NotFound(c, "Campaign not found")
	case stderrors.Is(err, services.ErrInviteNotFound):
		errors.NotFound(c, "Invite not found")
	case stderrors.Is(err, services.ErrCreatorProfileExists):
		errors.RespondWithError(c, http.StatusConflict,
			errors.NewAPIError(errors.ErrCodeAlreadyExists, "Creator profile already exists"))
	case stderrors.Is(err, services.ErrAlreadyInvited):
		errors.Conflict(c, "Creator already invited to this campaign")
	case stderrors.Is(err, services.ErrInviteAlreadyResolved):
		errors.Conflict(c, "Invite has already been answered")
	case stderrors.Is(err, services.ErrMetricTypeRequired):
		errors.BadRequest(c, "Metric type is required")
	default:
		errors.InternalError(c, "")
	}
}
