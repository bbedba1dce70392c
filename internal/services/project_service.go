package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectNameRequired = errors.New("project name is required")
)

// ProjectService handles project business logic. Statuses are derived, so
// the service carries the clock the read path feeds into the derivation.
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	campaignRepo repository.CampaignRepository
	now          func() time.Time
}

// NewProjectService creates a new ProjectService. A nil clock defaults to
// time.Now.
func NewProjectService(projectRepo repository.ProjectRepository, campaignRepo repository.CampaignRepository, now func() time.Time) *ProjectService {
	if now == nil {
		now = time.Now
	}
	return &ProjectService{
		projectRepo:  projectRepo,
		campaignRepo: campaignRepo,
		now:          now,
	}
}

// Today returns the reference date for status derivation.
func (s *ProjectService) Today() time.Time {
	return s.now()
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	UserID      uint64
	Name        string
	Description string
}

// CreateProject creates a new project owned by the user. Names are not
// unique; creation always succeeds for an authenticated user.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	project := &models.Project{
		UserID:      input.UserID,
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjects returns the user's projects with campaign aggregates.
func (s *ProjectService) ListProjects(userID uint64, offset, limit int) ([]repository.ProjectWithStats, int64, error) {
	rows, total, err := s.projectRepo.ListOwnedWithStats(userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return rows, total, nil
}

// GetProject returns one owned project with its campaign aggregate. A
// project owned by someone else is indistinguishable from a missing one.
func (s *ProjectService) GetProject(userID, id uint64) (*repository.ProjectWithStats, error) {
	row, err := s.projectRepo.StatsOwned(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return row, nil
}

// UpdateProjectInput represents a partial project update
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// UpdateProject applies the provided fields to an owned project.
func (s *ProjectService) UpdateProject(userID, id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindOwned(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrProjectNameRequired
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject deletes an owned project and everything reachable through
// it. It returns the final aggregate snapshot, computed before the delete.
func (s *ProjectService) DeleteProject(userID, id uint64) (*repository.ProjectWithStats, error) {
	snapshot, err := s.projectRepo.StatsOwned(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.DeleteOwned(userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	return snapshot, nil
}

// ListProjectCampaigns lists the campaigns of one owned project.
func (s *ProjectService) ListProjectCampaigns(userID, projectID uint64) (*models.Project, []models.Campaign, error) {
	project, err := s.projectRepo.FindOwned(userID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	campaigns, err := s.campaignRepo.ListForProject(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return project, campaigns, nil
}
