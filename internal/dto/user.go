package dto

import "github.com/streamseed/streamseed-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                uint64              `json:"id"`
	Email             string              `json:"email"`
	FirstName         string              `json:"first_name"`
	LastName          string              `json:"last_name"`
	ProfilePictureURL string              `json:"profile_picture_url,omitempty"`
	AuthProvider      models.AuthProvider `json:"auth_provider"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                user.ID,
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		ProfilePictureURL: user.ProfilePictureURL,
		AuthProvider:      user.AuthProvider,
	}
}
