package dto

import (
	"time"

	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/services"
	"github.com/streamseed/streamseed-api/internal/status"
)

// CampaignDTO represents a campaign in API responses. Status is derived
// from the date window on every read.
type CampaignDTO struct {
	ID           uint64                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	ProjectID    uint64                `json:"project_id"`
	ProjectName  string                `json:"project_name,omitempty"`
	Requirements string                `json:"requirements"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	Status       status.CampaignStatus `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ToCampaignDTO converts a Campaign model to a DTO, deriving the status for
// the given reference date. The project name is filled when preloaded.
func ToCampaignDTO(campaign models.Campaign, today time.Time) CampaignDTO {
	dto := CampaignDTO{
		ID:           campaign.ID,
		Name:         campaign.Name,
		Description:  campaign.Description,
		ProjectID:    campaign.ProjectID,
		Requirements: campaign.Requirements,
		StartDate:    campaign.StartDate.Format(dateLayout),
		EndDate:      campaign.EndDate.Format(dateLayout),
		Status:       status.ForCampaign(campaign.StartDate, campaign.EndDate, today),
		CreatedAt:    campaign.CreatedAt,
		UpdatedAt:    campaign.UpdatedAt,
	}

	if campaign.Project.ID != 0 {
		dto.ProjectName = campaign.Project.Name
	}

	return dto
}

// ToCampaignDTOs converts a slice of campaigns. Campaigns listed under a
// known project reuse its name when the relation was not preloaded.
func ToCampaignDTOs(campaigns []models.Campaign, projectName string, today time.Time) []CampaignDTO {
	dtos := make([]CampaignDTO, len(campaigns))
	for i, campaign := range campaigns {
		dtos[i] = ToCampaignDTO(campaign, today)
		if dtos[i].ProjectName == "" {
			dtos[i].ProjectName = projectName
		}
	}
	return dtos
}

// CampaignDraftDTO represents an AI campaign proposal in API responses
type CampaignDraftDTO struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// ToCampaignDraftDTO converts an AI draft to a DTO
func ToCampaignDraftDTO(draft services.CampaignDraft) CampaignDraftDTO {
	return CampaignDraftDTO{
		Name:         draft.Name,
		Description:  draft.Description,
		Requirements: draft.Requirements,
		StartDate:    draft.StartDate.Format(dateLayout),
		EndDate:      draft.EndDate.Format(dateLayout),
	}
}
