package models

import (
	"time"

	"gorm.io/gorm"
)

// Project has no stored status column; its lifecycle state is derived from
// the date span of its campaigns on every read.
type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	UserID      uint64         `gorm:"not null" json:"user_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User      User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Campaigns []Campaign `gorm:"foreignKey:ProjectID" json:"campaigns,omitempty"`
}
