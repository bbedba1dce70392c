package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign holds a date window; start_date < end_date is enforced by the
// service layer at create and update. Status is never stored.
type Campaign struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	ProjectID    uint64         `gorm:"not null" json:"project_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Requirements string         `gorm:"type:text" json:"requirements"`
	StartDate    time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time      `gorm:"type:date;not null" json:"end_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Invites []CampaignInvite `gorm:"foreignKey:CampaignID" json:"invites,omitempty"`
	Metrics []CampaignMetric `gorm:"foreignKey:CampaignID" json:"metrics,omitempty"`
}
