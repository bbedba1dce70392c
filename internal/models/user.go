package models

import (
	"time"

	"gorm.io/gorm"
)

type AuthProvider string

const (
	AuthProviderLocal    AuthProvider = "local"
	AuthProviderGoogle   AuthProvider = "google"
	AuthProviderFacebook AuthProvider = "facebook"
)

type User struct {
	ID                uint64         `gorm:"primarykey" json:"id"`
	Email             string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash      string         `gorm:"type:varchar(255)" json:"-"`
	FirstName         string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName          string         `gorm:"type:varchar(100);not null" json:"last_name"`
	ProfilePictureURL string         `gorm:"type:varchar(255)" json:"profile_picture_url"`
	AuthProvider      AuthProvider   `gorm:"type:varchar(20);not null;default:'local';uniqueIndex:idx_users_provider_social" json:"auth_provider"`
	SocialID          *string        `gorm:"type:varchar(255);uniqueIndex:idx_users_provider_social" json:"-"`
	IsActive          bool           `gorm:"not null;default:true" json:"is_active"`
	LastLogin         *time.Time     `json:"last_login"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Projects []Project `gorm:"foreignKey:UserID" json:"-"`
}
