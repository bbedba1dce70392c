package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/streamseed/streamseed-api/internal/constants"
	"github.com/streamseed/streamseed-api/internal/models"
	"github.com/streamseed/streamseed-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrAccountDeactivated   = errors.New("account is deactivated")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrSocialIDMissing      = errors.New("provider payload has no subject id")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewAuthService creates a new AuthService. A nil clock defaults to
// time.Now.
func NewAuthService(userRepo repository.UserRepository, now func() time.Time) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		userRepo: userRepo,
		now:      now,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a new local-password user.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		AuthProvider: models.AuthProviderLocal,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user. A
// deactivated account is rejected after the password check; the caller maps
// both failures onto a 401.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	lastLogin := s.now()
	user.LastLogin = &lastLogin
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return user, nil
}

// ProviderUserInfo is the identity payload fetched from an OAuth provider's
// userinfo endpoint after the code exchange.
type ProviderUserInfo struct {
	ID         string
	Email      string
	GivenName  string
	FamilyName string
	Picture    string
}

// LoginWithProvider resolves or provisions a user for an OAuth identity.
func (s *AuthService) LoginWithProvider(provider models.AuthProvider, info ProviderUserInfo) (*models.User, error) {
	if info.ID == "" {
		return nil, ErrSocialIDMissing
	}

	user, err := s.userRepo.FindBySocial(provider, info.ID)
	if err == nil {
		if !user.IsActive {
			return nil, ErrAccountDeactivated
		}
		lastLogin := s.now()
		user.LastLogin = &lastLogin
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to record login: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find social user: %w", err)
	}

	socialID := info.ID
	user = &models.User{
		Email:             strings.ToLower(strings.TrimSpace(info.Email)),
		FirstName:         info.GivenName,
		LastName:          info.FamilyName,
		ProfilePictureURL: info.Picture,
		AuthProvider:      provider,
		SocialID:          &socialID,
		IsActive:          true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to provision social user: %w", err)
	}

	return user, nil
}

// GetUser retrieves an active user by ID. A session pointing at a deleted
// or deactivated user resolves to nothing.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	return user, nil
}
