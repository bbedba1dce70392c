package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRecipientNotFound     = errors.New("recipient not found")
	ErrMessageToSelf         = errors.New("cannot send a message to yourself")
	ErrMessageContentMissing = errors.New("message content is required")
	ErrMessageNotFound       = errors.New("message not found")
	ErrNotificationNotFound  = errors.New("notification not found")
)

// InboxService handles user-to-user messages and notifications.
type InboxService struct {
	inboxRepo repository.InboxRepository
	userRepo  repository.UserRepository
}

// NewInboxService creates a new InboxService.
func NewInboxService(inboxRepo repository.InboxRepository, userRepo repository.UserRepository) *InboxService {
	return &InboxService{
		inboxRepo: inboxRepo,
		userRepo:  userRepo,
	}
}

// SendMessageInput represents input for sending a message
type SendMessageInput struct {
	SenderID   uint64
	ReceiverID uint64
	Content    string
}

// SendMessage sends a message to another user and drops a notification in
// their inbox.
func (s *InboxService) SendMessage(input SendMessageInput) (*models.Message, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrMessageContentMissing
	}
	if input.SenderID == input.ReceiverID {
		return nil, ErrMessageToSelf
	}

	receiver, err := s.userRepo.FindByID(input.ReceiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}
	if !receiver.IsActive {
		return nil, ErrRecipientNotFound
	}

	message := &models.Message{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
		Status:     models.StatusUnread,
	}

	if err := s.inboxRepo.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	notification := &models.Notification{
		UserID:  input.ReceiverID,
		Content: "You have a new message",
		Status:  models.StatusUnread,
	}
	if err := s.inboxRepo.CreateNotification(notification); err != nil {
		return nil, fmt.Errorf("failed to notify recipient: %w", err)
	}

	return message, nil
}

// ListConversation lists the messages between the user and another user.
func (s *InboxService) ListConversation(userID, otherID uint64, offset, limit int) ([]models.Message, int64, error) {
	messages, total, err := s.inboxRepo.ListConversation(userID, otherID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list conversation: %w", err)
	}
	return messages, total, nil
}

// MarkMessageRead marks a message read. Only the receiver can do this; to
// anyone else the message is simply not there.
func (s *InboxService) MarkMessageRead(userID, messageID uint64) (*models.Message, error) {
	message, err := s.inboxRepo.FindMessageByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	if message.ReceiverID != userID {
		return nil, ErrMessageNotFound
	}

	if message.Status != models.StatusRead {
		message.Status = models.StatusRead
		if err := s.inboxRepo.UpdateMessage(message); err != nil {
			return nil, fmt.Errorf("failed to mark message read: %w", err)
		}
	}

	return message, nil
}

// ListNotifications lists the user's notifications.
func (s *InboxService) ListNotifications(userID uint64, offset, limit int) ([]models.Notification, int64, error) {
	notifications, total, err := s.inboxRepo.ListNotifications(userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkNotificationRead marks a notification read, scoped to its user.
func (s *InboxService) MarkNotificationRead(userID, notificationID uint64) (*models.Notification, error) {
	notification, err := s.inboxRepo.FindNotificationByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if notification.UserID != userID {
		return nil, ErrNotificationNotFound
	}

	if notification.Status != models.StatusRead {
		notification.Status = models.StatusRead
		if err := s.inboxRepo.UpdateNotification(notification); err != nil {
			return nil, fmt.Errorf("failed to mark notification read: %w", err)
		}
	}

	return notification, nil
}
