package models

import "time"

type Notification struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	UserID    uint64     `gorm:"not null" json:"user_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Status    ReadStatus `gorm:"type:varchar(10);not null;default:'unread'" json:"status"`
	CreatedAt time.Time  `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
