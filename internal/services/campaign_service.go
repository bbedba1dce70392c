package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/streamseed/streamseed-api/internal/constants"
	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/repository"
	"github.com/streamseed/streamseed-api/internal/status"
	"gorm.io/gorm"
)

var (
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrCampaignNameRequired   = errors.New("campaign name is required")
	ErrInvalidDateRange       = errors.New("start date must be before end date")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoDraftsGenerated    = errors.New("AI did not generate any campaign drafts")
	ErrAINoValidDrafts        = errors.New("no valid campaign drafts could be created from AI output")
)

// CampaignService handles campaign business logic
type CampaignService struct {
	campaignRepo repository.CampaignRepository
	projectRepo  repository.ProjectRepository
	aiService    *AIService
	now          func() time.Time
}

// NewCampaignService creates a new CampaignService. A nil clock defaults to
// time.Now.
func NewCampaignService(campaignRepo repository.CampaignRepository, projectRepo repository.ProjectRepository, aiService *AIService, now func() time.Time) *CampaignService {
	if now == nil {
		now = time.Now
	}
	return &CampaignService{
		campaignRepo: campaignRepo,
		projectRepo:  projectRepo,
		aiService:    aiService,
		now:          now,
	}
}

// Today returns the reference date for status derivation.
func (s *CampaignService) Today() time.Time {
	return s.now()
}

// CreateCampaignInput represents input for creating a campaign
type CreateCampaignInput struct {
	UserID       uint64
	ProjectID    uint64
	Name         string
	Description  string
	Requirements string
	StartDate    time.Time
	EndDate      time.Time
}

// CreateCampaign creates a campaign under one of the user's projects. A
// project outside the ownership chain reports as not found, and an invalid
// date range writes nothing.
func (s *CampaignService) CreateCampaign(input CreateCampaignInput) (*models.Campaign, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrCampaignNameRequired
	}

	if _, err := s.projectRepo.FindOwned(input.UserID, input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}

	if !status.ValidDateRange(input.StartDate, input.EndDate) {
		return nil, ErrInvalidDateRange
	}

	campaign := &models.Campaign{
		ProjectID:    input.ProjectID,
		Name:         input.Name,
		Description:  input.Description,
		Requirements: input.Requirements,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return s.campaignRepo.FindOwned(input.UserID, campaign.ID)
}

// ListCampaignsInput represents filters for listing campaigns
type ListCampaignsInput struct {
	UserID    uint64
	ProjectID *uint64
	Status    *status.CampaignStatus
	Page      int
	PageSize  int
}

// ListCampaigns lists campaigns reachable through the user's projects.
func (s *CampaignService) ListCampaigns(input ListCampaignsInput) ([]models.Campaign, int64, error) {
	filter := repository.CampaignFilter{
		UserID:    input.UserID,
		ProjectID: input.ProjectID,
		Status:    input.Status,
		Today:     s.now(),
		Page:      input.Page,
		PageSize:  input.PageSize,
	}

	campaigns, total, err := s.campaignRepo.ListOwned(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, total, nil
}

// GetCampaign returns one campaign within the user's scope.
func (s *CampaignService) GetCampaign(userID, id uint64) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindOwned(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}
	return campaign, nil
}

// UpdateCampaignInput represents a partial campaign update; nil fields are
// left untouched.
type UpdateCampaignInput struct {
	Name         *string
	Description  *string
	Requirements *string
	ProjectID    *uint64
	StartDate    *time.Time
	EndDate      *time.Time
}

// UpdateCampaign applies the provided fields and re-validates the date
// invariant against the merged result, not the individual deltas. The
// mutation runs on a copy inside the repository transaction, so a rejected
// update leaves the stored row completely unmodified.
func (s *CampaignService) UpdateCampaign(userID, id uint64, input UpdateCampaignInput) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.UpdateOwned(userID, id, func(campaign *models.Campaign) error {
		if input.Name != nil {
			if strings.TrimSpace(*input.Name) == "" {
				return ErrCampaignNameRequired
			}
			campaign.Name = *input.Name
		}
		if input.Description != nil {
			campaign.Description = *input.Description
		}
		if input.Requirements != nil {
			campaign.Requirements = *input.Requirements
		}
		if input.ProjectID != nil {
			campaign.ProjectID = *input.ProjectID
		}
		if input.StartDate != nil {
			campaign.StartDate = *input.StartDate
		}
		if input.EndDate != nil {
			campaign.EndDate = *input.EndDate
		}

		if !status.ValidDateRange(campaign.StartDate, campaign.EndDate) {
			return ErrInvalidDateRange
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTargetProjectNotOwned):
			return nil, ErrProjectNotFound
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrCampaignNotFound
		case errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrCampaignNameRequired):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to update campaign: %w", err)
		}
	}

	return campaign, nil
}

// DeleteCampaign deletes a campaign within the user's scope.
func (s *CampaignService) DeleteCampaign(userID, id uint64) error {
	if err := s.campaignRepo.DeleteOwned(userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

// GenerateDraftsInput represents input for AI campaign drafting
type GenerateDraftsInput struct {
	Brief string
}

// GenerateDrafts uses AI to draft campaigns from a marketing brief. Drafts
// are proposals only; nothing is persisted here.
func (s *CampaignService) GenerateDrafts(ctx context.Context, input GenerateDraftsInput) ([]CampaignDraft, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := s.aiService.GenerateCampaignDrafts(ctx, input.Brief)
	if err != nil {
		return nil, fmt.Errorf("failed to generate campaign drafts: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoDraftsGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedDrafts {
		return nil, fmt.Errorf("AI generated too many drafts (max %d)", constants.MaxAIGeneratedDrafts)
	}

	validDrafts := make([]CampaignDraft, 0, len(drafts))
	for _, draft := range drafts {
		if strings.TrimSpace(draft.Name) == "" {
			continue
		}
		if !status.ValidDateRange(draft.StartDate, draft.EndDate) {
			continue
		}
		validDrafts = append(validDrafts, draft)
	}

	if len(validDrafts) == 0 {
		return nil, ErrAINoValidDrafts
	}

	return validDrafts, nil
}
