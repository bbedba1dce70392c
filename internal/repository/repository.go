package repository

import (
	"time"

	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/status"
)

// ProjectWithStats is a project row joined with its campaign aggregate:
// campaign count and the outer date span, computed in a single grouped query.
type ProjectWithStats struct {
	models.Project        `gorm:"embedded"`
	CampaignCount         int64      `gorm:"column:campaign_count" json:"campaign_count"`
	EarliestCampaignStart *time.Time `gorm:"column:earliest_campaign_start" json:"earliest_campaign_start"`
	LatestCampaignEnd     *time.Time `gorm:"column:latest_campaign_end" json:"latest_campaign_end"`
}

// CampaignFilter holds filtering options for listing campaigns. Status is a
// derived property, so the filter carries the reference date and the
// repository translates the label into date predicates.
type CampaignFilter struct {
	UserID    uint64
	ProjectID *uint64
	Status    *status.CampaignStatus
	Today     time.Time
	Page      int
	PageSize  int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindBySocial finds a user by OAuth provider and social ID
	FindBySocial(provider models.AuthProvider, socialID string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// ProjectRepository defines the interface for project data access. Every
// read and mutation is scoped to the owning user.
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindOwned finds a project owned by the user
	FindOwned(userID, id uint64) (*models.Project, error)

	// ListOwnedWithStats lists the user's projects with campaign aggregates
	// in one grouped query, plus the total project count for pagination
	ListOwnedWithStats(userID uint64, offset, limit int) ([]ProjectWithStats, int64, error)

	// StatsOwned returns a single owned project with its campaign aggregate
	StatsOwned(userID, id uint64) (*ProjectWithStats, error)

	// Update updates a project
	Update(project *models.Project) error

	// DeleteOwned deletes an owned project and cascades to its campaigns,
	// invites and metrics within one transaction
	DeleteOwned(userID, id uint64) error
}

// CampaignRepository defines the interface for campaign data access. Scoping
// is always a join through projects, never a separate ownership lookup.
type CampaignRepository interface {
	// Create creates a new campaign
	Create(campaign *models.Campaign) error

	// FindOwned finds a campaign reachable through the user's projects
	FindOwned(userID, id uint64) (*models.Campaign, error)

	// ListOwned lists campaigns reachable through the user's projects
	ListOwned(filter CampaignFilter) ([]models.Campaign, int64, error)

	// ListForProject lists the campaigns of one project; the caller is
	// responsible for having scoped the project itself
	ListForProject(projectID uint64) ([]models.Campaign, error)

	// UpdateOwned loads an owned campaign, applies the mutation, re-checks
	// ownership of a reassigned project, and saves — all in one transaction
	UpdateOwned(userID, id uint64, apply func(campaign *models.Campaign) error) (*models.Campaign, error)

	// DeleteOwned deletes an owned campaign and its invites and metrics
	// within one transaction
	DeleteOwned(userID, id uint64) error
}

// EngagementRepository defines data access for creator profiles, campaign
// invitations and campaign metrics.
type EngagementRepository interface {
	// CreateCreator creates a creator profile
	CreateCreator(creator *models.Creator) error

	// FindCreatorByID finds a creator profile by ID
	FindCreatorByID(id uint64) (*models.Creator, error)

	// FindCreatorByUserID finds the creator profile of a user
	FindCreatorByUserID(userID uint64) (*models.Creator, error)

	// CreateInvite creates a campaign invite
	CreateInvite(invite *models.CampaignInvite) error

	// FindInvite finds an invite by campaign and creator
	FindInvite(campaignID, creatorID uint64) (*models.CampaignInvite, error)

	// FindInviteByID finds an invite with its campaign, project and creator
	FindInviteByID(id uint64) (*models.CampaignInvite, error)

	// UpdateInvite updates an invite
	UpdateInvite(invite *models.CampaignInvite) error

	// ListInvitesForCampaign lists a campaign's invites with creators
	ListInvitesForCampaign(campaignID uint64) ([]models.CampaignInvite, error)

	// AddMetric appends a metric row for a campaign
	AddMetric(metric *models.CampaignMetric) error

	// ListMetrics lists a campaign's metric rows, newest first
	ListMetrics(campaignID uint64) ([]models.CampaignMetric, error)
}

// InboxRepository defines data access for messages and notifications.
type InboxRepository interface {
	// CreateMessage creates a message
	CreateMessage(message *models.Message) error

	// FindMessageByID finds a message by ID
	FindMessageByID(id uint64) (*models.Message, error)

	// ListConversation lists messages between two users, newest first
	ListConversation(userID, otherID uint64, offset, limit int) ([]models.Message, int64, error)

	// UpdateMessage updates a message
	UpdateMessage(message *models.Message) error

	// CreateNotification creates a notification
	CreateNotification(notification *models.Notification) error

	// FindNotificationByID finds a notification by ID
	FindNotificationByID(id uint64) (*models.Notification, error)

	// ListNotifications lists a user's notifications, newest first
	ListNotifications(userID uint64, offset, limit int) ([]models.Notification, int64, error)

	// UpdateNotification updates a notification
	UpdateNotification(notification *models.Notification) error
}
