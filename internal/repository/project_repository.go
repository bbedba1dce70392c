package repository

import (
	"github.com/streamseed/streamseed-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

const projectStatsSelect = "projects.*, " +
	"COUNT(campaigns.id) AS campaign_count, " +
	"MIN(campaigns.start_date) AS earliest_campaign_start, " +
	"MAX(campaigns.end_date) AS latest_campaign_end"

// statsQuery builds the grouped aggregate query shared by the list and
// single-row reads. Soft-deleted campaigns are excluded in the join
// condition so they do not drag the span.
func (r *GormProjectRepository) statsQuery(userID uint64) *gorm.DB {
	return r.db.Model(&models.Project{}).
		Select(projectStatsSelect).
		Joins("LEFT JOIN campaigns ON campaigns.project_id = projects.id AND campaigns.deleted_at IS NULL").
		Where("projects.user_id = ?", userID).
		Group("projects.id")
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindOwned finds a project owned by the user
func (r *GormProjectRepository) FindOwned(userID, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListOwnedWithStats lists the user's projects with campaign aggregates in
// one grouped query, never one aggregate query per project.
func (r *GormProjectRepository) ListOwnedWithStats(userID uint64, offset, limit int) ([]ProjectWithStats, int64, error) {
	var total int64
	if err := r.db.Model(&models.Project{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ProjectWithStats
	if err := r.statsQuery(userID).
		Order("projects.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// StatsOwned returns a single owned project with its campaign aggregate
func (r *GormProjectRepository) StatsOwned(userID, id uint64) (*ProjectWithStats, error) {
	var row ProjectWithStats
	err := r.statsQuery(userID).
		Where("projects.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	// Scan does not report ErrRecordNotFound; a zero ID means no row matched.
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// DeleteOwned deletes an owned project and all reachable campaign data in a
// transaction, so the scope check cannot race a concurrent mutation.
func (r *GormProjectRepository) DeleteOwned(userID, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("id = ? AND user_id = ?", id, userID).
			First(&project).Error; err != nil {
			return err
		}

		var campaignIDs []uint64
		if err := tx.Model(&models.Campaign{}).
			Where("project_id = ?", id).
			Pluck("id", &campaignIDs).Error; err != nil {
			return err
		}

		if len(campaignIDs) > 0 {
			if err := tx.Where("campaign_id IN ?", campaignIDs).
				Delete(&models.CampaignInvite{}).Error; err != nil {
				return err
			}
			if err := tx.Where("campaign_id IN ?", campaignIDs).
				Delete(&models.CampaignMetric{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).
				Delete(&models.Campaign{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&project).Error
	})
}
