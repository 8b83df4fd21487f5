package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialgram/internal/models"
	"socialgram/internal/storage"
	"socialgram/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("caller lacks the required role")
)

// ValidationError rejects a malformed post before anything touches the store.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid post: " + e.Reason
}

// storyLifetime is how long a story stays visible after creation.
const storyLifetime = 24 * time.Hour

// MediaFile is one decoded upload attached to a new post.
type MediaFile struct {
	Data        []byte
	ContentType string
}

// CreatePostInput carries the validated fields of a new post. The kind is
// explicit: listing fields are only read for listings and a story's expiry
// is derived here, so a post can never be both.
type CreatePostInput struct {
	Kind       models.PostKind
	Caption    *string
	LocationID *string
	SongID     *string
	Title      string
	Price      decimal.Decimal
	CategoryID string
	Files      []MediaFile
}

// PostService handles post lifecycle, comments, and collaboration edges
type PostService struct {
	db     *gorm.DB
	media  *storage.MediaStore
	logger *zap.Logger
}

// NewPostService creates a new PostService
func NewPostService(db *gorm.DB, media *storage.MediaStore, logger *zap.Logger) *PostService {
	return &PostService{db: db, media: media, logger: logger}
}

func (s *PostService) validate(ctx context.Context, input *CreatePostInput) error {
	if input.Caption != nil && len(*input.Caption) > 4000 {
		return &ValidationError{Reason: "caption"}
	}
	if input.LocationID != nil {
		exists, err := s.rowExists(ctx, &models.Location{}, *input.LocationID)
		if err != nil {
			return err
		}
		if !exists {
			return &ValidationError{Reason: "location"}
		}
	}

	switch input.Kind {
	case models.PostKindNormal:
	case models.PostKindListing:
		if len(input.Title) == 0 || len(input.Title) > 32 {
			return &ValidationError{Reason: "title"}
		}
		if input.Price.IsNegative() {
			return &ValidationError{Reason: "price"}
		}
		exists, err := s.rowExists(ctx, &models.ProductCategory{}, input.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return &ValidationError{Reason: "category"}
		}
	case models.PostKindStory:
		if input.SongID != nil {
			exists, err := s.rowExists(ctx, &models.Song{}, *input.SongID)
			if err != nil {
				return err
			}
			if !exists {
				return &ValidationError{Reason: "song"}
			}
		}
	default:
		return &ValidationError{Reason: "type"}
	}

	for _, file := range input.Files {
		if !storage.IsMediaType(file.ContentType) || !storage.IsStorable(file.ContentType) {
			return &ValidationError{Reason: "files"}
		}
	}
	return nil
}

func (s *PostService) rowExists(ctx context.Context, model interface{}, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreatePost validates the input, stores the media blobs, and inserts the
// post row, the optional listing row, the media rows, and the creator edge
// in a single transaction.
func (s *PostService) CreatePost(ctx context.Context, creatorID string, input CreatePostInput) (string, error) {
	if err := s.validate(ctx, &input); err != nil {
		return "", err
	}

	now := time.Now()
	post := models.Post{
		ID:         utils.GenerateID(),
		Kind:       input.Kind,
		Caption:    input.Caption,
		LocationID: input.LocationID,
		CreatedAt:  now,
	}
	if input.Kind == models.PostKindStory {
		expires := now.Add(storyLifetime)
		post.ExpiresAt = &expires
		post.SongID = input.SongID
	}

	// Blob writes happen before the transaction; the store is an external
	// collaborator and cannot take part in the rollback.
	type stored struct {
		id  string
		url string
		typ string
	}
	files := make([]stored, 0, len(input.Files))
	for _, file := range input.Files {
		id, url, err := s.media.Store(file.Data, file.ContentType)
		if err != nil {
			return "", fmt.Errorf("failed to store media: %w", err)
		}
		files = append(files, stored{id: id, url: url, typ: file.ContentType})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		if input.Kind == models.PostKindListing {
			listing := models.Listing{
				PostID:     post.ID,
				Title:      input.Title,
				Price:      input.Price,
				CategoryID: input.CategoryID,
			}
			if err := tx.Create(&listing).Error; err != nil {
				return err
			}
		}

		for i, file := range files {
			media := models.Media{
				ID:          file.id,
				URL:         file.url,
				PostID:      post.ID,
				UserID:      creatorID,
				Position:    i,
				ContentType: file.typ,
			}
			if err := tx.Create(&media).Error; err != nil {
				return err
			}
		}

		return tx.Create(&models.UserPost{
			UserID: creatorID,
			PostID: post.ID,
			Role:   models.RoleCreator,
		}).Error
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("post created",
		zap.String("post_id", post.ID),
		zap.String("creator_id", creatorID),
		zap.String("kind", string(post.Kind)))
	return post.ID, nil
}

// MediaItem is one media entry of a post view.
type MediaItem struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// PostUser is one accepted collaborator or creator of a post.
type PostUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// PostView is the nested client representation of a single post.
type PostView struct {
	Time            time.Time               `json:"time"`
	Kind            models.PostKind         `json:"type"`
	LikeCount       int64                   `json:"likeCount"`
	Caption         *string                 `json:"caption,omitempty"`
	Location        *models.Location        `json:"location,omitempty"`
	Expires         *time.Time              `json:"expires,omitempty"`
	Song            *models.Song            `json:"song,omitempty"`
	Title           *string                 `json:"title,omitempty"`
	Price           *decimal.Decimal        `json:"price,omitempty"`
	ProductCategory *models.ProductCategory `json:"productCategory,omitempty"`
	Media           []MediaItem             `json:"media"`
	Users           []PostUser              `json:"users"`
	IsCreator       bool                    `json:"isCreator"`
	IsCollaborator  bool                    `json:"isCollaborator"`
	IsAdmin         bool                    `json:"isAdmin"`
}

// GetPost assembles the nested view of one post. viewerID may be empty for
// anonymous viewers, who are neither creator nor collaborator nor admin.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID string) (*PostView, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Where("id = ?", postID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	view := PostView{
		Time:    post.CreatedAt,
		Kind:    post.Kind,
		Caption: post.Caption,
		Expires: post.ExpiresAt,
		Media:   []MediaItem{},
		Users:   []PostUser{},
	}

	if err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).Count(&view.LikeCount).Error; err != nil {
		return nil, err
	}

	if post.LocationID != nil {
		var location models.Location
		if err := s.db.WithContext(ctx).Where("id = ?", *post.LocationID).First(&location).Error; err == nil {
			view.Location = &location
		}
	}
	if post.SongID != nil {
		var song models.Song
		if err := s.db.WithContext(ctx).Where("id = ?", *post.SongID).First(&song).Error; err == nil {
			view.Song = &song
		}
	}
	if post.Kind == models.PostKindListing {
		var listing models.Listing
		if err := s.db.WithContext(ctx).Where("post_id = ?", postID).First(&listing).Error; err != nil {
			return nil, fmt.Errorf("listing row missing for post %s: %w", postID, err)
		}
		view.Title = &listing.Title
		view.Price = &listing.Price
		var category models.ProductCategory
		if err := s.db.WithContext(ctx).Where("id = ?", listing.CategoryID).First(&category).Error; err == nil {
			view.ProductCategory = &category
		}
	}

	var media []models.Media
	err = s.db.WithContext(ctx).Where("post_id = ?", postID).
		Order("position ASC").Find(&media).Error
	if err != nil {
		return nil, err
	}
	for _, m := range media {
		view.Media = append(view.Media, MediaItem{ID: m.ID, URL: m.URL, Type: m.ContentType})
	}

	var users []struct {
		ID          string
		Username    string
		DisplayName *string
	}
	err = s.db.WithContext(ctx).Table("users").
		Select("users.id, users.username, users.display_name").
		Joins("JOIN user_posts ON user_posts.user_id = users.id").
		Where("user_posts.post_id = ? AND user_posts.role IN ?",
			postID, []models.CollabRole{models.RoleCollaborator, models.RoleCreator}).
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		name := u.Username
		if u.DisplayName != nil && *u.DisplayName != "" {
			name = *u.DisplayName
		}
		view.Users = append(view.Users, PostUser{ID: u.ID, DisplayName: name})
	}

	if viewerID != "" {
		var edge models.UserPost
		err = s.db.WithContext(ctx).
			Where("user_id = ? AND post_id = ?", viewerID, postID).
			First(&edge).Error
		if err == nil {
			view.IsCreator = edge.Role == models.RoleCreator
			view.IsCollaborator = edge.Role == models.RoleCollaborator
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		var admins int64
		err = s.db.WithContext(ctx).Model(&models.User{}).
			Where("id = ? AND is_admin = ?", viewerID, true).Count(&admins).Error
		if err != nil {
			return nil, err
		}
		view.IsAdmin = admins > 0
	}

	return &view, nil
}

// DeletePost removes a post. Only its creator or an admin may delete it;
// a missing post and a missing permission are reported differently.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID string) error {
	exists, err := s.rowExists(ctx, &models.Post{}, postID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPostNotFound
	}

	var creatorEdges int64
	err = s.db.WithContext(ctx).Model(&models.UserPost{}).
		Where("user_id = ? AND post_id = ? AND role = ?", callerID, postID, models.RoleCreator).
		Count(&creatorEdges).Error
	if err != nil {
		return err
	}
	if creatorEdges == 0 {
		var admins int64
		err = s.db.WithContext(ctx).Model(&models.User{}).
			Where("id = ? AND is_admin = ?", callerID, true).Count(&admins).Error
		if err != nil {
			return err
		}
		if admins == 0 {
			return ErrForbidden
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{
			&models.Listing{}, &models.Media{}, &models.UserPost{},
			&models.Comment{}, &models.Like{},
		} {
			if err := tx.Where("post_id = ?", postID).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", postID).Delete(&models.Post{}).Error
	})
}

// CommentView is one comment with its author resolved at read time.
type CommentView struct {
	User PostUser  `json:"user"`
	Time time.Time `json:"time"`
	Text string    `json:"text"`
}

// GetComments lists a post's comments with author display names. A
// missing post is reported as ErrPostNotFound rather than an empty list.
func (s *PostService) GetComments(ctx context.Context, postID string) ([]CommentView, error) {
	exists, err := s.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	var rows []struct {
		CreatedAt   time.Time
		Text        string
		UserID      string
		Username    string
		DisplayName *string
	}
	err = s.db.WithContext(ctx).Table("comments").
		Select("comments.created_at, comments.text, users.id AS user_id, users.username, users.display_name").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	comments := make([]CommentView, 0, len(rows))
	for _, row := range rows {
		name := row.Username
		if row.DisplayName != nil && *row.DisplayName != "" {
			name = *row.DisplayName
		}
		comments = append(comments, CommentView{
			User: PostUser{ID: row.UserID, DisplayName: name},
			Time: row.CreatedAt,
			Text: row.Text,
		})
	}
	return comments, nil
}

// AddComment attaches a comment to a post.
func (s *PostService) AddComment(ctx context.Context, postID, userID, text string) error {
	if len(text) == 0 || len(text) > 4000 {
		return &ValidationError{Reason: "text"}
	}
	exists, err := s.rowExists(ctx, &models.Post{}, postID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPostNotFound
	}

	return s.db.WithContext(ctx).Create(&models.Comment{
		ID:        utils.GenerateID(),
		PostID:    postID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}).Error
}

// PostExists reports whether a post ID refers to a real post.
func (s *PostService) PostExists(ctx context.Context, postID string) (bool, error) {
	return s.rowExists(ctx, &models.Post{}, postID)
}
