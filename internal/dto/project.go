package dto

import (
	"time"

	"github.com/streamseed/streamseed-api/internal/repository"
	"github.com/streamseed/streamseed-api/internal/status"
)

const dateLayout = "2006-01-02"

// ProjectDTO represents a project in API responses. Status and the campaign
// aggregate are derived per request and never stored.
type ProjectDTO struct {
	ID                    uint64               `json:"id"`
	Name                  string               `json:"name"`
	Description           string               `json:"description"`
	Status                status.ProjectStatus `json:"status"`
	UserID                uint64               `json:"user_id"`
	CampaignCount         int64                `json:"campaign_count"`
	EarliestCampaignStart *string              `json:"earliest_campaign_start"`
	LatestCampaignEnd     *string              `json:"latest_campaign_end"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

// ToProjectDTO converts an aggregated project row to a DTO, deriving the
// status for the given reference date.
func ToProjectDTO(row repository.ProjectWithStats, today time.Time) ProjectDTO {
	return ProjectDTO{
		ID:                    row.ID,
		Name:                  row.Name,
		Description:           row.Description,
		Status:                status.ForProject(row.EarliestCampaignStart, row.LatestCampaignEnd, today),
		UserID:                row.UserID,
		CampaignCount:         row.CampaignCount,
		EarliestCampaignStart: formatDate(row.EarliestCampaignStart),
		LatestCampaignEnd:     formatDate(row.LatestCampaignEnd),
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
