package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialgram/internal/auth"
	"socialgram/internal/models"
	"socialgram/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrFollowSelf       = errors.New("cannot follow self")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
	ErrAlreadyAdmin     = errors.New("user is already an admin")
	ErrNotAdmin         = errors.New("user is not an admin")
)

// Profile is the public view of a user account.
type Profile struct {
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Zodiac      *string  `json:"zodiac,omitempty"`
	Bio         *string  `json:"bio,omitempty"`
	Location    *string  `json:"location,omitempty"`
	IsAdmin     bool     `json:"is_admin"`
	Followers   []string `json:"followers"`
	Following   []string `json:"following"`
}

// UserService handles profiles, the social graph, and account administration
type UserService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(db *gorm.DB, logger *zap.Logger) *UserService {
	return &UserService{db: db, logger: logger}
}

// GetProfile assembles a user's public profile. The display name falls
// back to the username and the zodiac sign is derived from the birthday.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Location").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	profile := Profile{
		Username:    user.Username,
		DisplayName: user.Username,
		Bio:         user.Bio,
		IsAdmin:     user.IsAdmin,
	}
	if user.DisplayName != nil {
		profile.DisplayName = *user.DisplayName
	}
	if user.Birthday != nil {
		sign := utils.ZodiacSign(*user.Birthday)
		profile.Zodiac = &sign
	}
	if user.Location != nil {
		profile.Location = &user.Location.Name
	}

	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Pluck("follower_id", &profile.Followers).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &profile.Following).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

// GetUsername returns a user's handle.
func (s *UserService) GetUsername(ctx context.Context, userID string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("username").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GetDisplayName returns a user's display name, falling back to the handle.
func (s *UserService) GetDisplayName(ctx context.Context, userID string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("username", "display_name").
		Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if user.DisplayName != nil && *user.DisplayName != "" {
		return *user.DisplayName, nil
	}
	return user.Username, nil
}

// GetUserIDByUsername resolves a handle to a user ID.
func (s *UserService) GetUserIDByUsername(ctx context.Context, username string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("id").Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// IsAdmin reports whether a user has the admin flag. A nonexistent user is
// not an admin.
func (s *UserService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND is_admin = ?", userID, true).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Follow creates a follower edge. Self-follows and duplicates are rejected.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrFollowSelf
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyFollowing
	}

	return s.db.WithContext(ctx).Create(&models.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}).Error
}

// Unfollow removes a follower edge. Removing an edge that does not exist
// is reported as ErrNotFollowing.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrFollowSelf
	}

	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// BlockedUser is one entry in a user's block list.
type BlockedUser struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// GetBlockedUsers lists the users a user has blocked.
func (s *UserService) GetBlockedUsers(ctx context.Context, userID string) ([]BlockedUser, error) {
	var rows []struct {
		ID          string
		Username    string
		DisplayName *string
	}
	err := s.db.WithContext(ctx).Table("blocks").
		Select("users.id, users.username, users.display_name").
		Joins("JOIN users ON users.id = blocks.blocked_id").
		Where("blocks.blocker_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	blocked := make([]BlockedUser, 0, len(rows))
	for _, row := range rows {
		entry := BlockedUser{UserID: row.ID, Username: row.Username, DisplayName: row.Username}
		if row.DisplayName != nil && *row.DisplayName != "" {
			entry.DisplayName = *row.DisplayName
		}
		blocked = append(blocked, entry)
	}
	return blocked, nil
}

// Settings carries the optional fields of a settings update. Nil fields
// are left untouched.
type Settings struct {
	Username    *string
	Password    *string
	DisplayName *string
	Bio         *string
	Birthday    *time.Time
	LocationID  *string
}

// UpdateSettings applies a partial settings update. A new password is
// re-hashed before storage.
func (s *UserService) UpdateSettings(ctx context.Context, userID string, settings Settings) error {
	updates := map[string]interface{}{}
	if settings.Username != nil {
		if len(*settings.Username) == 0 || len(*settings.Username) > 32 {
			return ErrInvalidUsername
		}
		updates["username"] = *settings.Username
	}
	if settings.Password != nil {
		if len(*settings.Password) == 0 {
			return ErrInvalidPassword
		}
		hash, err := auth.HashPassword(*settings.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = hash
	}
	if settings.DisplayName != nil {
		updates["display_name"] = *settings.DisplayName
	}
	if settings.Bio != nil {
		updates["bio"] = *settings.Bio
	}
	if settings.Birthday != nil {
		updates["birthday"] = *settings.Birthday
	}
	if settings.LocationID != nil {
		updates["location_id"] = *settings.LocationID
	}
	if len(updates) == 0 {
		return nil
	}

	// A username change competes with every other account, so the
	// availability check and the update run in one transaction. Keeping
	// the current username is always allowed.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if settings.Username != nil {
			var taken int64
			err := tx.Model(&models.User{}).
				Where("username = ? AND id <> ?", *settings.Username, userID).
				Count(&taken).Error
			if err != nil {
				return err
			}
			if taken > 0 {
				return ErrUsernameTaken
			}
		}

		result := tx.Model(&models.User{}).
			Where("id = ?", userID).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

// UserSummary is one row of the admin user listing.
type UserSummary struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsers returns all accounts, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]UserSummary, error) {
	var users []UserSummary
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Select("id", "username", "is_admin", "created_at").
		Order("created_at DESC").
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// MakeAdmin grants the admin flag.
func (s *UserService) MakeAdmin(ctx context.Context, userID string) error {
	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if isAdmin {
		return ErrAlreadyAdmin
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).Update("is_admin", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	s.logger.Info("user promoted to admin", zap.String("user_id", userID))
	return nil
}

// RemoveAdmin revokes the admin flag.
func (s *UserService) RemoveAdmin(ctx context.Context, userID string) error {
	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAdmin
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).Update("is_admin", false)
	if result.Error != nil {
		return result.Error
	}
	s.logger.Info("admin flag removed", zap.String("user_id", userID))
	return nil
}

// DeleteUser hard-deletes an account. Only reachable through admin routes.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	result := s.db.WithContext(ctx).Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	s.logger.Info("user deleted", zap.String("user_id", userID))
	return nil
}
