package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamseed/streamseed-api/internal/dto"
	"github.com/streamseed/streamseed-api/internal/errors"
	"github.com/streamseed/streamseed-api/internal/middleware"
	"github.com/streamseed/streamseed-api/internal/services"
	"github.com/streamseed/streamseed-api/internal/status"
	"github.com/streamseed/streamseed-api/internal/utils"
)

const dateLayout = "2006-01-02"

// CampaignHandler handles campaign endpoints
type CampaignHandler struct {
	campaignService *services.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// CreateCampaignRequest represents the campaign creation request body.
// Dates travel as YYYY-MM-DD strings.
type CreateCampaignRequest struct {
	ProjectID    uint64 `json:"project_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
}

// UpdateCampaignRequest represents the partial update request body. Absent
// fields keep their stored values; date validation runs against the merged
// result.
type UpdateCampaignRequest struct {
	ProjectID    *uint64 `json:"project_id"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
}

// GenerateCampaignsRequest represents the AI draft generation request body
type GenerateCampaignsRequest struct {
	Brief string `json:"brief" binding:"required"`
}

// Create handles POST /api/campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		errors.BadRequest(c, "start_date must be formatted as YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		errors.BadRequest(c, "end_date must be formatted as YYYY-MM-DD")
		return
	}

	campaign, err := h.campaignService.CreateCampaign(services.CreateCampaignInput{
		UserID:       userID,
		ProjectID:    req.ProjectID,
		Name:         req.Name,
		Description:  req.Description,
		Requirements: req.Requirements,
		StartDate:    startDate,
		EndDate:      endDate,
	})
	if err != nil {
		h.respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"campaign": dto.ToCampaignDTO(*campaign, h.campaignService.Today())})
}

// List handles GET /api/campaigns. Supports project_id and status query
// filters; the status filter matches what the derived status would report
// for today.
func (h *CampaignHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListCampaignsInput{
		UserID:   userID,
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if raw := c.Query("project_id"); raw != "" {
		projectID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errors.BadRequest(c, "project_id must be an integer")
			return
		}
		input.ProjectID = &projectID
	}

	if raw := c.Query("status"); raw != "" {
		filter, ok := parseStatusFilter(raw)
		if !ok {
			errors.BadRequest(c, "status must be one of Pending, Live, Completed")
			return
		}
		input.Status = &filter
	}

	campaigns, total, err := h.campaignService.ListCampaigns(input)
	if err != nil {
		h.respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaigns": dto.ToCampaignDTOs(campaigns, "", h.campaignService.Today()),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get handles GET /api/campaigns/:id
func (h *CampaignHandler) Get(c *gin.Context) {
	campaign, ok := middleware.GetCampaign(c)
	if !ok {
		errors.NotFound(c, "Campaign not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign": dto.ToCampaignDTO(campaign, h.campaignService.Today())})
}

// Update handles PATCH /api/campaigns/:id
func (h *CampaignHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	campaign, ok := middleware.GetCampaign(c)
	if !ok {
		errors.NotFound(c, "Campaign not found")
		return
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := services.UpdateCampaignInput{
		ProjectID:    req.ProjectID,
		Name:         req.Name,
		Description:  req.Description,
		Requirements: req.Requirements,
	}

	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			errors.BadRequest(c, "start_date must be formatted as YYYY-MM-DD")
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			errors.BadRequest(c, "end_date must be formatted as YYYY-MM-DD")
			return
		}
		input.EndDate = &endDate
	}

	updated, err := h.campaignService.UpdateCampaign(userID, campaign.ID, input)
	if err != nil {
		h.respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign": dto.ToCampaignDTO(*updated, h.campaignService.Today())})
}

// Delete handles DELETE /api/campaigns/:id
func (h *CampaignHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	campaign, ok := middleware.GetCampaign(c)
	if !ok {
		errors.NotFound(c, "Campaign not found")
		return
	}

	if err := h.campaignService.DeleteCampaign(userID, campaign.ID); err != nil {
		h.respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

// Generate handles POST /api/campaigns/generate. Drafts are proposals; the
// client submits the ones it wants through the regular create endpoint.
func (h *CampaignHandler) Generate(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		errors.Unauthorized(c, "")
		return
	}

	var req GenerateCampaignsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	drafts, err := h.campaignService.GenerateDrafts(c.Request.Context(), services.GenerateDraftsInput{
		Brief: req.Brief,
	})
	if err != nil {
		h.respondCampaignError(c, err)
		return
	}

	out := make([]dto.CampaignDraftDTO, len(drafts))
	for i, draft := range drafts {
		out[i] = dto.ToCampaignDraftDTO(draft)
	}

	c.JSON(http.StatusOK, gin.H{"drafts": out})
}

func parseStatusFilter(raw string) (status.CampaignStatus, bool) {
	switch status.CampaignStatus(raw) {
	case status.CampaignPending, status.CampaignLive, status.CampaignCompleted:
		return status.CampaignStatus(raw), true
	}
	return "", false
}

func (h *CampaignHandler) respondCampaignError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, services.ErrCampaignNotFound):
		errors.NotFound(c, "Campaign not found")
	case stderrors.Is(err, services.ErrProjectNotFound):
		errors.NotFound(c, "Project not found")
	case stderrors.Is(err, services.ErrCampaignNameRequired):
		errors.BadRequest(c, "Campaign name is required")
	case stderrors.Is(err, services.ErrInvalidDateRange):
		errors.InvalidDateRange(c, "")
	case stderrors.Is(err, services.ErrAIServiceNotConfigured):
		errors.ServiceUnavailable(c, "Campaign generation is not configured")
	case stderrors.Is(err, services.ErrAINoDraftsGenerated),
		stderrors.Is(err, services.ErrAINoValidDrafts):
		errors.ServiceUnavailable(c, "Campaign generation produced no usable drafts")
	default:
		errors.InternalError(c, "")
	}
}
