package services

import (
	"context"
	"errors"

	"socialgram/internal/models"

	"gorm.io/gorm"
)

// CollabKind selects which collaboration edge an update targets. The two
// kinds map to fixed models, so no table or column name is ever assembled
// from request data.
type CollabKind string

const (
	CollabKindPost CollabKind = "post"
	CollabKindAd   CollabKind = "ad"
)

var ErrCollabNotFound = errors.New("no pending collaboration for that user and entity")

// PostCollabRequest is a pending invitation to collaborate on a post,
// described by the post's creator.
type PostCollabRequest struct {
	UserID   string  `json:"userID"`
	PostID   string  `json:"postID"`
	Username string  `json:"username"`
	Caption  *string `json:"caption"`
}

// AdCollabRequest is a pending invitation to collaborate on an ad.
type AdCollabRequest struct {
	UserID   string `json:"userID"`
	AdID     string `json:"adID"`
	Username string `json:"username"`
	ClickURL string `json:"clickURL"`
}

// CollabService handles collaboration invitations for posts and ads
type CollabService struct {
	db *gorm.DB
}

// NewCollabService creates a new CollabService
func NewCollabService(db *gorm.DB) *CollabService {
	return &CollabService{db: db}
}

// GetPostCollabRequests lists the creators of posts on which the user has
// a pending collaborator edge.
func (s *CollabService) GetPostCollabRequests(ctx context.Context, userID string) ([]PostCollabRequest, error) {
	pending := s.db.Model(&models.UserPost{}).
		Select("post_id").
		Where("user_id = ? AND role = ?", userID, models.RolePending)

	var requests []PostCollabRequest
	err := s.db.WithContext(ctx).Table("user_posts").
		Select("user_posts.user_id AS user_id, user_posts.post_id AS post_id, users.username, posts.caption").
		Joins("JOIN posts ON posts.id = user_posts.post_id").
		Joins("JOIN users ON users.id = user_posts.user_id").
		Where("user_posts.post_id IN (?)", pending).
		Where("user_posts.role = ?", models.RoleCreator).
		Scan(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetAdCollabRequests lists the creators of ads on which the user has a
// pending collaborator edge.
func (s *CollabService) GetAdCollabRequests(ctx context.Context, userID string) ([]AdCollabRequest, error) {
	pending := s.db.Model(&models.AdRole{}).
		Select("ad_id").
		Where("user_id = ? AND role = ?", userID, models.RolePending)

	var requests []AdCollabRequest
	err := s.db.WithContext(ctx).Table("ad_roles").
		Select("ad_roles.user_id AS user_id, ad_roles.ad_id AS ad_id, users.username, ads.click_url AS click_url").
		Joins("JOIN ads ON ads.id = ad_roles.ad_id").
		Joins("JOIN users ON users.id = ad_roles.user_id").
		Where("ad_roles.ad_id IN (?)", pending).
		Where("ad_roles.role = ?", models.RoleCreator).
		Scan(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Accept flips the user's pending edge on the entity to accepted.
func (s *CollabService) Accept(ctx context.Context, kind CollabKind, entityID, userID string) error {
	var result *gorm.DB
	switch kind {
	case CollabKindPost:
		result = s.db.WithContext(ctx).Model(&models.UserPost{}).
			Where("post_id = ? AND user_id = ? AND role = ?", entityID, userID, models.RolePending).
			Update("role", models.RoleCollaborator)
	case CollabKindAd:
		result = s.db.WithContext(ctx).Model(&models.AdRole{}).
			Where("ad_id = ? AND user_id = ? AND role = ?", entityID, userID, models.RolePending).
			Update("role", models.RoleCollaborator)
	default:
		return errors.New("unknown collaboration kind")
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollabNotFound
	}
	return nil
}

// Reject deletes the user's pending edge on the entity.
func (s *CollabService) Reject(ctx context.Context, kind CollabKind, entityID, userID string) error {
	var result *gorm.DB
	switch kind {
	case CollabKindPost:
		result = s.db.WithContext(ctx).
			Where("post_id = ? AND user_id = ? AND role = ?", entityID, userID, models.RolePending).
			Delete(&models.UserPost{})
	case CollabKindAd:
		result = s.db.WithContext(ctx).
			Where("ad_id = ? AND user_id = ? AND role = ?", entityID, userID, models.RolePending).
			Delete(&models.AdRole{})
	default:
		return errors.New("unknown collaboration kind")
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollabNotFound
	}
	return nil
}
