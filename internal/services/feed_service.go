package services

import (
	"context"
	"time"

	"socialgram/internal/aggregate"
	"socialgram/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FeedService builds the two feed views for a viewing user
type FeedService struct {
	db *gorm.DB
}

// NewFeedService creates a new FeedService
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

type feedRow struct {
	UserID    string
	PostID    string
	CreatedAt time.Time
	Caption   *string
	ExpiresAt *time.Time
	Title     *string
	Price     *decimal.Decimal
}

// feedRows fetches one row per (post, accepted collaborator) for posts
// visible to the viewer: a followed user must hold an accepted or creator
// role on the post. The outer role filter then keeps only accepted
// collaborators and creators in the rows themselves, so pending
// collaborators never surface in anyone's feed.
func (s *FeedService) feedRows(ctx context.Context, viewerID string, stories bool) ([]feedRow, error) {
	followees := s.db.Model(&models.Follow{}).
		Select("followee_id").
		Where("follower_id = ?", viewerID)

	visible := s.db.Model(&models.UserPost{}).
		Select("user_posts.post_id").
		Joins("JOIN posts ON posts.id = user_posts.post_id").
		Where("user_posts.user_id IN (?)", followees).
		Where("user_posts.role IN ?", []models.CollabRole{models.RoleCollaborator, models.RoleCreator})

	if stories {
		// Expiry is a read-time predicate, not a deletion event: an expired
		// story vanishes without any purge step.
		visible = visible.
			Where("posts.kind = ?", models.PostKindStory).
			Where("posts.expires_at > ?", time.Now())
	} else {
		visible = visible.Where("posts.kind <> ?", models.PostKindStory)
	}

	var rows []feedRow
	err := s.db.WithContext(ctx).Table("user_posts").
		Distinct("user_posts.user_id", "user_posts.post_id", "posts.created_at",
			"posts.caption", "posts.expires_at", "listings.title", "listings.price").
		Joins("JOIN posts ON posts.id = user_posts.post_id").
		Joins("LEFT JOIN listings ON listings.post_id = posts.id").
		Where("user_posts.post_id IN (?)", visible).
		Where("user_posts.role IN ?", []models.CollabRole{models.RoleCollaborator, models.RoleCreator}).
		Order("posts.created_at DESC, user_posts.post_id, user_posts.user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// merge folds the one-row-per-collaborator result into one record per
// post, with all poster IDs collected under "userID".
func merge(rows []feedRow, stories bool) []map[string]any {
	records := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		record := map[string]any{
			"userID": row.UserID,
			"postID": row.PostID,
			"time":   row.CreatedAt,
		}
		if stories {
			record["expires"] = row.ExpiresAt
		} else {
			record["caption"] = row.Caption
			if row.Title != nil {
				record["title"] = *row.Title
				record["price"] = *row.Price
			}
		}
		records = append(records, record)
	}
	return aggregate.DedupeMerge(records, "postID", "userID")
}

// FeedPosts returns the durable feed: non-story posts by followed users,
// newest first, one record per post. A viewer who follows nobody gets an
// empty slice, never an error.
func (s *FeedService) FeedPosts(ctx context.Context, viewerID string) ([]map[string]any, error) {
	rows, err := s.feedRows(ctx, viewerID, false)
	if err != nil {
		return nil, err
	}
	return merge(rows, false), nil
}

// FeedStories returns the ephemeral feed: stories by followed users whose
// expiry is still in the future at query time.
func (s *FeedService) FeedStories(ctx context.Context, viewerID string) ([]map[string]any, error) {
	rows, err := s.feedRows(ctx, viewerID, true)
	if err != nil {
		return nil, err
	}
	return merge(rows, true), nil
}
