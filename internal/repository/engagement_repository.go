package repository

import (
	"github.com/streamseed/streamseed-api/internal/models"
	"gorm.io/gorm"
)

// GormEngagementRepository is a GORM implementation of EngagementRepository
type GormEngagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new EngagementRepository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &GormEngagementRepository{db: db}
}

// CreateCreator creates a creator profile
func (r *GormEngagementRepository) CreateCreator(creator *models.Creator) error {
	return r.db.Create(creator).Error
}

// FindCreatorByID finds a creator profile by ID
func (r *GormEngagementRepository) FindCreatorByID(id uint64) (*models.Creator, error) {
	var creator models.Creator
	if err := r.db.Preload("User").First(&creator, id).Error; err != nil {
		return nil, err
	}
	return &creator, nil
}

// FindCreatorByUserID finds the creator profile of a user
func (r *GormEngagementRepository) FindCreatorByUserID(userID uint64) (*models.Creator, error) {
	var creator models.Creator
	if err := r.db.Where("user_id = ?", userID).First(&creator).Error; err != nil {
		return nil, err
	}
	return &creator, nil
}

// CreateInvite creates a campaign invite
func (r *GormEngagementRepository) CreateInvite(invite *models.CampaignInvite) error {
	return r.db.Create(invite).Error
}

// FindInvite finds an invite by campaign and creator
func (r *GormEngagementRepository) FindInvite(campaignID, creatorID uint64) (*models.CampaignInvite, error) {
	var invite models.CampaignInvite
	if err := r.db.Where("campaign_id = ? AND creator_id = ?", campaignID, creatorID).
		First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// FindInviteByID finds an invite with its campaign, project and creator
func (r *GormEngagementRepository) FindInviteByID(id uint64) (*models.CampaignInvite, error) {
	var invite models.CampaignInvite
	if err := r.db.
		Preload("Campaign").
		Preload("Campaign.Project").
		Preload("Creator").
		First(&invite, id).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// UpdateInvite updates an invite
func (r *GormEngagementRepository) UpdateInvite(invite *models.CampaignInvite) error {
	return r.db.Save(invite).Error
}

// ListInvitesForCampaign lists a campaign's invites with creators
func (r *GormEngagementRepository) ListInvitesForCampaign(campaignID uint64) ([]models.CampaignInvite, error) {
	var invites []models.CampaignInvite
	if err := r.db.Preload("Creator").Preload("Creator.User").
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

// AddMetric appends a metric row for a campaign
func (r *GormEngagementRepository) AddMetric(metric *models.CampaignMetric) error {
	return r.db.Create(metric).Error
}

// ListMetrics lists a campaign's metric rows, newest first
func (r *GormEngagementRepository) ListMetrics(campaignID uint64) ([]models.CampaignMetric, error) {
	var metrics []models.CampaignMetric
	if err := r.db.Where("campaign_id = ?", campaignID).
		Order("recorded_at DESC").
		Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}
