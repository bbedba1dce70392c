package repository

import (
	"errors"
	"fmt"

	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/status"
	"gorm.io/gorm"
)

var (
	// ErrTargetProjectNotOwned is returned when a campaign reassignment names
	// a project outside the caller's ownership chain.
	ErrTargetProjectNotOwned = errors.New("campaign repository: target project not owned by user")
)

// GormCampaignRepository is a GORM implementation of CampaignRepository
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &GormCampaignRepository{db: db}
}

// ownedScope joins campaigns to their owning project in a single query. A
// separate membership lookup could race with a concurrent reassignment;
// the join cannot.
func ownedScope(db *gorm.DB, userID uint64) *gorm.DB {
	return db.
		Joins("JOIN projects ON projects.id = campaigns.project_id AND projects.deleted_at IS NULL").
		Where("projects.user_id = ?", userID)
}

// Create creates a new campaign
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// FindOwned finds a campaign reachable through the user's projects
func (r *GormCampaignRepository) FindOwned(userID, id uint64) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := ownedScope(r.db, userID).
		Where("campaigns.id = ?", id).
		Preload("Project").
		First(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ListOwned lists campaigns reachable through the user's projects. A status
// filter is translated into predicates on the date columns.
func (r *GormCampaignRepository) ListOwned(filter CampaignFilter) ([]models.Campaign, int64, error) {
	query := ownedScope(r.db.Model(&models.Campaign{}), filter.UserID)

	if filter.ProjectID != nil {
		query = query.Where("campaigns.project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		today := filter.Today.Format("2006-01-02")
		switch *filter.Status {
		case status.CampaignPending:
			query = query.Where("campaigns.start_date > ?", today)
		case status.CampaignLive:
			query = query.Where("campaigns.start_date <= ? AND campaigns.end_date >= ?", today, today)
		case status.CampaignCompleted:
			query = query.Where("campaigns.end_date < ?", today)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("campaigns.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	var campaigns []models.Campaign
	if err := listQuery.Preload("Project").Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// ListForProject lists the campaigns of one project
func (r *GormCampaignRepository) ListForProject(projectID uint64) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := r.db.Where("project_id = ?", projectID).
		Order("start_date ASC").
		Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// UpdateOwned loads the campaign within the user's scope, lets the caller
// mutate a copy, re-verifies ownership of a reassigned project, and saves.
// The whole sequence runs in one transaction; a rejected mutation leaves the
// stored row untouched.
func (r *GormCampaignRepository) UpdateOwned(userID, id uint64, apply func(campaign *models.Campaign) error) (*models.Campaign, error) {
	var updated models.Campaign

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var campaign models.Campaign
		if err := ownedScope(tx, userID).
			Where("campaigns.id = ?", id).
			First(&campaign).Error; err != nil {
			return err
		}

		originalProjectID := campaign.ProjectID
		if err := apply(&campaign); err != nil {
			return err
		}

		if campaign.ProjectID != originalProjectID {
			var project models.Project
			if err := tx.Where("id = ? AND user_id = ?", campaign.ProjectID, userID).
				First(&project).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrTargetProjectNotOwned, err)
			}
		}

		if err := tx.Save(&campaign).Error; err != nil {
			return err
		}

		updated = campaign
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.db.Preload("Project").First(&updated, updated.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOwned deletes an owned campaign and its invites and metrics in a
// transaction
func (r *GormCampaignRepository) DeleteOwned(userID, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var campaign models.Campaign
		if err := ownedScope(tx, userID).
			Where("campaigns.id = ?", id).
			First(&campaign).Error; err != nil {
			return err
		}

		if err := tx.Where("campaign_id = ?", id).
			Delete(&models.CampaignInvite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("campaign_id = ?", id).
			Delete(&models.CampaignMetric{}).Error; err != nil {
			return err
		}

		return tx.Delete(&campaign).Error
	})
}
