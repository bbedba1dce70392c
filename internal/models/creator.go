package models

import (
	"time"

	"gorm.io/gorm"
)

type Creator struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	UserID      uint64         `gorm:"not null;uniqueIndex" json:"user_id"`
	Bio         string         `gorm:"type:text" json:"bio"`
	SocialLinks string         `gorm:"type:text" json:"social_links"`
	Rating      float64        `gorm:"not null;default:0" json:"rating"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User    User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Invites []CampaignInvite `gorm:"foreignKey:CreatorID" json:"-"`
}
