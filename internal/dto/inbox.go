package dto

import (
	"time"

	"github.com/streamseed/streamseed-api/internal/models"
)

// MessageDTO represents a message in API responses
type MessageDTO struct {
	ID         uint64            `json:"id"`
	SenderID   uint64            `json:"sender_id"`
	ReceiverID uint64            `json:"receiver_id"`
	Content    string            `json:"content"`
	Status     models.ReadStatus `json:"status"`
	Sender     *UserDTO          `json:"sender,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        uint64            `json:"id"`
	Content   string            `json:"content"`
	Status    models.ReadStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// ToMessageDTO converts a Message model to a DTO
func ToMessageDTO(message models.Message) MessageDTO {
	dto := MessageDTO{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Content:    message.Content,
		Status:     message.Status,
		CreatedAt:  message.CreatedAt,
	}

	if message.Sender.ID != 0 {
		sender := ToUserDTO(message.Sender)
		dto.Sender = &sender
	}

	return dto
}

// ToMessageDTOs converts a slice of messages
func ToMessageDTOs(messages []models.Message) []MessageDTO {
	dtos := make([]MessageDTO, len(messages))
	for i, message := range messages {
		dtos[i] = ToMessageDTO(message)
	}
	return dtos
}

// ToNotificationDTO converts a Notification model to a DTO
func ToNotificationDTO(notification models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        notification.ID,
		Content:   notification.Content,
		Status:    notification.Status,
		CreatedAt: notification.CreatedAt,
	}
}

// ToNotificationDTOs converts a slice of notifications
func ToNotificationDTOs(notifications []models.Notification) []NotificationDTO {
	dtos := make([]NotificationDTO, len(notifications))
	for i, notification := range notifications {
		dtos[i] = ToNotificationDTO(notification)
	}
	return dtos
}
