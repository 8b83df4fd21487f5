package services

import (
	"context"
	"errors"
	"fmt"

	"socialgram/internal/auth"
	"socialgram/internal/models"
	"socialgram/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidUsername = errors.New("username must be between 1 and 32 characters")
	ErrInvalidPassword = errors.New("password must not be empty")
	ErrBadCredentials  = errors.New("incorrect username or password")
)

// AuthService handles registration and password login
type AuthService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB, logger *zap.Logger) *AuthService {
	return &AuthService{db: db, logger: logger}
}

// Register creates a new account and returns it. The first user ever
// created becomes an admin.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if len(username) == 0 || len(username) > 32 {
		return nil, ErrInvalidUsername
	}
	if len(password) == 0 {
		return nil, ErrInvalidPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           utils.GenerateID(),
		Username:     username,
		PasswordHash: hash,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrUsernameTaken
		}

		var userCount int64
		if err := tx.Model(&models.User{}).Count(&userCount).Error; err != nil {
			return err
		}
		user.IsAdmin = userCount == 0

		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("new user created",
		zap.String("user_id", user.ID),
		zap.String("username", username),
		zap.Bool("is_admin", user.IsAdmin))
	return &user, nil
}

// Login verifies a (username, password) pair and returns the matching user.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	identity, err := auth.Authenticate(s.db.WithContext(ctx), user.ID, password)
	if err != nil {
		return nil, err
	}
	if !identity.Authenticated {
		return nil, ErrBadCredentials
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &user, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether a username is registered.
func (s *AuthService) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
