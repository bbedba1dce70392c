package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCreatorNotFound       = errors.New("creator not found")
	ErrCreatorProfileExists  = errors.New("creator profile already exists for this user")
	ErrInviteNotFound        = errors.New("invite not found")
	ErrAlreadyInvited        = errors.New("creator already has an open or accepted invite for this campaign")
	ErrInviteAlreadyResolved = errors.New("invite has already been accepted or rejected")
	ErrMetricTypeRequired    = errors.New("metric type is required")
)

// EngagementService handles creator profiles, campaign invitations and
// campaign metrics. Campaign access always goes through the ownership
// chain of the acting user.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
	campaignRepo   repository.CampaignRepository
	inboxRepo      repository.InboxRepository
	now            func() time.Time
}

// NewEngagementService creates a new EngagementService. A nil clock
// defaults to time.Now.
func NewEngagementService(engagementRepo repository.EngagementRepository, campaignRepo repository.CampaignRepository, inboxRepo repository.InboxRepository, now func() time.Time) *EngagementService {
	if now == nil {
		now = time.Now
	}
	return &EngagementService{
		engagementRepo: engagementRepo,
		campaignRepo:   campaignRepo,
		inboxRepo:      inboxRepo,
		now:            now,
	}
}

// CreateCreatorInput represents input for creating a creator profile
type CreateCreatorInput struct {
	UserID      uint64
	Bio         string
	SocialLinks string
}

// CreateCreatorProfile creates the creator profile for a user. One per user.
func (s *EngagementService) CreateCreatorProfile(input CreateCreatorInput) (*models.Creator, error) {
	if _, err := s.engagementRepo.FindCreatorByUserID(input.UserID); err == nil {
		return nil, ErrCreatorProfileExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check creator profile: %w", err)
	}

	creator := &models.Creator{
		UserID:      input.UserID,
		Bio:         input.Bio,
		SocialLinks: input.SocialLinks,
	}

	if err := s.engagementRepo.CreateCreator(creator); err != nil {
		return nil, fmt.Errorf("failed to create creator profile: %w", err)
	}

	return creator, nil
}

// GetCreator returns a creator profile. Profiles are public to any
// authenticated user so campaign owners can evaluate invitees.
func (s *EngagementService) GetCreator(id uint64) (*models.Creator, error) {
	creator, err := s.engagementRepo.FindCreatorByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to find creator: %w", err)
	}
	return creator, nil
}

// InviteCreatorInput represents input for inviting a creator to a campaign
type InviteCreatorInput struct {
	UserID     uint64
	CampaignID uint64
	CreatorID  uint64
}

// InviteCreator invites a creator to one of the user's campaigns. A
// previously rejected invite is reopened; a pending or accepted one
// conflicts.
func (s *EngagementService) InviteCreator(input InviteCreatorInput) (*models.CampaignInvite, error) {
	campaign, err := s.campaignRepo.FindOwned(input.UserID, input.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to verify campaign: %w", err)
	}

	creator, err := s.engagementRepo.FindCreatorByID(input.CreatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to find creator: %w", err)
	}

	invite, err := s.engagementRepo.FindInvite(input.CampaignID, input.CreatorID)
	switch {
	case err == nil:
		if invite.Status != models.InviteStatusRejected {
			return nil, ErrAlreadyInvited
		}
		invite.Status = models.InviteStatusInvited
		if err := s.engagementRepo.UpdateInvite(invite); err != nil {
			return nil, fmt.Errorf("failed to reopen invite: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		invite = &models.CampaignInvite{
			CampaignID: input.CampaignID,
			CreatorID:  input.CreatorID,
			Status:     models.InviteStatusInvited,
		}
		if err := s.engagementRepo.CreateInvite(invite); err != nil {
			return nil, fmt.Errorf("failed to create invite: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to check existing invite: %w", err)
	}

	notification := &models.Notification{
		UserID:  creator.UserID,
		Content: fmt.Sprintf("You have been invited to the campaign %q", campaign.Name),
		Status:  models.StatusUnread,
	}
	if err := s.inboxRepo.CreateNotification(notification); err != nil {
		return nil, fmt.Errorf("failed to notify creator: %w", err)
	}

	return invite, nil
}

// ListInvites lists the invites of one of the user's campaigns.
func (s *EngagementService) ListInvites(userID, campaignID uint64) ([]models.CampaignInvite, error) {
	if _, err := s.campaignRepo.FindOwned(userID, campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to verify campaign: %w", err)
	}

	invites, err := s.engagementRepo.ListInvitesForCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

// RespondToInvite lets the invited creator accept or reject. Anyone else
// sees the invite as missing. Acceptance notifies the campaign owner.
func (s *EngagementService) RespondToInvite(userID, inviteID uint64, accept bool) (*models.CampaignInvite, error) {
	invite, err := s.engagementRepo.FindInviteByID(inviteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}

	if invite.Creator.UserID != userID {
		return nil, ErrInviteNotFound
	}
	if invite.Status != models.InviteStatusInvited {
		return nil, ErrInviteAlreadyResolved
	}

	if accept {
		invite.Status = models.InviteStatusAccepted
	} else {
		invite.Status = models.InviteStatusRejected
	}

	if err := s.engagementRepo.UpdateInvite(invite); err != nil {
		return nil, fmt.Errorf("failed to update invite: %w", err)
	}

	if accept {
		notification := &models.Notification{
			UserID:  invite.Campaign.Project.UserID,
			Content: fmt.Sprintf("A creator accepted the invite for campaign %q", invite.Campaign.Name),
			Status:  models.StatusUnread,
		}
		if err := s.inboxRepo.CreateNotification(notification); err != nil {
			return nil, fmt.Errorf("failed to notify campaign owner: %w", err)
		}
	}

	return invite, nil
}

// RecordMetricInput represents input for appending a campaign metric
type RecordMetricInput struct {
	UserID     uint64
	CampaignID uint64
	MetricType string
	Value      int64
}

// RecordMetric appends an analytics row to one of the user's campaigns.
func (s *EngagementService) RecordMetric(input RecordMetricInput) (*models.CampaignMetric, error) {
	if input.MetricType == "" {
		return nil, ErrMetricTypeRequired
	}

	if _, err := s.campaignRepo.FindOwned(input.UserID, input.CampaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to verify campaign: %w", err)
	}

	metric := &models.CampaignMetric{
		CampaignID: input.CampaignID,
		MetricType: input.MetricType,
		Value:      input.Value,
		RecordedAt: s.now(),
	}

	if err := s.engagementRepo.AddMetric(metric); err != nil {
		return nil, fmt.Errorf("failed to record metric: %w", err)
	}

	return metric, nil
}

// ListMetrics lists the analytics rows of one of the user's campaigns.
func (s *EngagementService) ListMetrics(userID, campaignID uint64) ([]models.CampaignMetric, error) {
	if _, err := s.campaignRepo.FindOwned(userID, campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to verify campaign: %w", err)
	}

	metrics, err := s.engagementRepo.ListMetrics(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	return metrics, nil
}
