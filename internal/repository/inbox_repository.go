package repository

import (
	"github.com/streamseed/streamseed-api/internal/database"
	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/utils"
	"gorm.io/gorm"
)

// GormInboxRepository is a GORM implementation of InboxRepository
type GormInboxRepository struct {
	db *gorm.DB
}

// NewInboxRepository creates a new InboxRepository
func NewInboxRepository(db *gorm.DB) InboxRepository {
	return &GormInboxRepository{db: db}
}

// CreateMessage creates a message
func (r *GormInboxRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindMessageByID finds a message by ID
func (r *GormInboxRepository) FindMessageByID(id uint64) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListConversation lists messages between two users, newest first
func (r *GormInboxRepository) ListConversation(userID, otherID uint64, offset, limit int) ([]models.Message, int64, error) {
	query := r.db.Model(&models.Message{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	if err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(utils.PaginationParams{Offset: offset, Limit: limit})).
		Preload("Sender").
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// UpdateMessage updates a message
func (r *GormInboxRepository) UpdateMessage(message *models.Message) error {
	return r.db.Save(message).Error
}

// CreateNotification creates a notification
func (r *GormInboxRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// FindNotificationByID finds a notification by ID
func (r *GormInboxRepository) FindNotificationByID(id uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListNotifications lists a user's notifications, newest first
func (r *GormInboxRepository) ListNotifications(userID uint64, offset, limit int) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	if err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(utils.PaginationParams{Offset: offset, Limit: limit})).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// UpdateNotification updates a notification
func (r *GormInboxRepository) UpdateNotification(notification *models.Notification) error {
	return r.db.Save(notification).Error
}
