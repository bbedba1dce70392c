package models

import (
	"time"

	"gorm.io/gorm"
)

type InviteStatus string

const (
	InviteStatusInvited  InviteStatus = "invited"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusRejected InviteStatus = "rejected"
)

type CampaignInvite struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	CampaignID uint64         `gorm:"not null;uniqueIndex:idx_invites_campaign_creator" json:"campaign_id"`
	CreatorID  uint64         `gorm:"not null;uniqueIndex:idx_invites_campaign_creator" json:"creator_id"`
	Status     InviteStatus   `gorm:"type:varchar(20);not null;default:'invited'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
	Creator  Creator  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}
