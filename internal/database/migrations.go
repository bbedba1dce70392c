package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/streamseed/streamseed-api/internal/models"
)

// AddIndexes adds composite indexes that the model tags do not express.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Campaign listing joins and the project aggregate query
		{&models.Campaign{}, "campaigns", "idx_campaigns_project_id_start_date", "project_id, start_date"},
		{&models.Campaign{}, "campaigns", "idx_campaigns_project_id_end_date", "project_id, end_date"},

		// Ownership scoping
		{&models.Project{}, "projects", "idx_projects_user_id", "user_id"},

		// Conversation lookups
		{&models.Message{}, "messages", "idx_messages_sender_receiver_created", "sender_id, receiver_id, created_at"},

		// Unread notification polling
		{&models.Notification{}, "notifications", "idx_notifications_user_id_status", "user_id, status"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
