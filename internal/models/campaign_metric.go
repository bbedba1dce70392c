package models

import "time"

type CampaignMetric struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	CampaignID uint64    `gorm:"not null;index" json:"campaign_id"`
	MetricType string    `gorm:"type:varchar(255);not null" json:"metric_type"`
	Value      int64     `gorm:"not null" json:"value"`
	RecordedAt time.Time `json:"recorded_at"`

	// Relations
	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
}
