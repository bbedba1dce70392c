package models

import "time"

type ReadStatus string

const (
	StatusUnread ReadStatus = "unread"
	StatusRead   ReadStatus = "read"
)

type Message struct {
	ID         uint64     `gorm:"primarykey" json:"id"`
	SenderID   uint64     `gorm:"not null" json:"sender_id"`
	ReceiverID uint64     `gorm:"not null" json:"receiver_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Status     ReadStatus `gorm:"type:varchar(10);not null;default:'unread'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`

	// Relations
	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
