package dto

import (
	"time"

	"github.com/streamseed/streamseed-api/internal/models"
)

// CreatorDTO represents a creator profile in API responses
type CreatorDTO struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	Bio         string    `json:"bio"`
	SocialLinks string    `json:"social_links"`
	Rating      float64   `json:"rating"`
	User        *UserDTO  `json:"user,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// InviteDTO represents a campaign invitation in API responses
type InviteDTO struct {
	ID         uint64              `json:"id"`
	CampaignID uint64              `json:"campaign_id"`
	CreatorID  uint64              `json:"creator_id"`
	Status     models.InviteStatus `json:"status"`
	Creator    *CreatorDTO         `json:"creator,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// MetricDTO represents a campaign analytics row in API responses
type MetricDTO struct {
	ID         uint64    `json:"id"`
	CampaignID uint64    `json:"campaign_id"`
	MetricType string    `json:"metric_type"`
	Value      int64     `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ToCreatorDTO converts a Creator model to a DTO
func ToCreatorDTO(creator models.Creator) CreatorDTO {
	dto := CreatorDTO{
		ID:          creator.ID,
		UserID:      creator.UserID,
		Bio:         creator.Bio,
		SocialLinks: creator.SocialLinks,
		Rating:      creator.Rating,
		CreatedAt:   creator.CreatedAt,
	}

	if creator.User.ID != 0 {
		user := ToUserDTO(creator.User)
		dto.User = &user
	}

	return dto
}

// ToInviteDTO converts a CampaignInvite model to a DTO
func ToInviteDTO(invite models.CampaignInvite) InviteDTO {
	dto := InviteDTO{
		ID:         invite.ID,
		CampaignID: invite.CampaignID,
		CreatorID:  invite.CreatorID,
		Status:     invite.Status,
		CreatedAt:  invite.CreatedAt,
	}

	if invite.Creator.ID != 0 {
		creator := ToCreatorDTO(invite.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToInviteDTOs converts a slice of invites
func ToInviteDTOs(invites []models.CampaignInvite) []InviteDTO {
	dtos := make([]InviteDTO, len(invites))
	for i, invite := range invites {
		dtos[i] = ToInviteDTO(invite)
	}
	return dtos
}

// ToMetricDTO converts a CampaignMetric model to a DTO
func ToMetricDTO(metric models.CampaignMetric) MetricDTO {
	return MetricDTO{
		ID:         metric.ID,
		CampaignID: metric.CampaignID,
		MetricType: metric.MetricType,
		Value:      metric.Value,
		RecordedAt: metric.RecordedAt,
	}
}

// ToMetricDTOs converts a slice of metrics
func ToMetricDTOs(metrics []models.CampaignMetric) []MetricDTO {
	dtos := make([]MetricDTO, len(metrics))
	for i, metric := range metrics {
		dtos[i] = ToMetricDTO(metric)
	}
	return dtos
}
