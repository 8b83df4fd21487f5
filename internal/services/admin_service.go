package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// schemaRegistry is the fixed set of tables and columns the admin browsing
// endpoints may touch. Projections are built from this registry only.
var schemaRegistry = map[string][]string{
	"users":                 {"id", "username", "display_name", "is_admin", "bio", "birthday", "location_id", "created_at"},
	"follows":               {"follower_id", "followee_id", "created_at"},
	"blocks":                {"blocker_id", "blocked_id", "created_at"},
	"posts":                 {"id", "kind", "caption", "location_id", "expires_at", "song_id", "created_at"},
	"listings":              {"post_id", "title", "price", "category_id"},
	"user_posts":            {"user_id", "post_id", "role"},
	"media":                 {"id", "url", "post_id", "user_id", "position", "content_type"},
	"comments":              {"id", "post_id", "user_id", "text", "created_at"},
	"likes":                 {"user_id", "post_id", "created_at"},
	"ads":                   {"id", "image_url", "click_url", "remaining_views", "created_at"},
	"ad_showings":           {"id", "ad_id", "user_id", "shown_at", "clicked"},
	"ad_roles":              {"user_id", "ad_id", "role"},
	"message_groups":        {"id", "name", "created_at"},
	"message_group_members": {"group_id", "user_id", "created_at"},
	"messages":              {"id", "group_id", "sender_id", "text", "sent_at"},
	"locations":             {"id", "name", "latitude", "longitude", "altitude", "city", "country"},
	"songs":                 {"id", "title", "artist", "url"},
	"product_categories":    {"id", "name"},
}

// ActiveUser is one row of the active-users report.
type ActiveUser struct {
	UserID         string     `json:"user_id"`
	TotalPosts     int64      `json:"total_posts"`
	MostRecentPost *time.Time `json:"most_recent_post"`
}

// AdminService provides reporting and schema browsing for admins
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates a new AdminService
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Tables lists the browsable tables.
func (s *AdminService) Tables() []string {
	tables := make([]string, 0, len(schemaRegistry))
	for table := range schemaRegistry {
		tables = append(tables, table)
	}
	return tables
}

// Attributes lists the browsable columns of a table.
func (s *AdminService) Attributes(table string) ([]string, error) {
	columns, ok := schemaRegistry[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return columns, nil
}

// SelectedAttributes projects the requested columns of a table. Both the
// table and every column must appear in the registry.
func (s *AdminService) SelectedAttributes(ctx context.Context, table string, columns []string) ([]map[string]interface{}, error) {
	known, ok := schemaRegistry[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("at least one column is required")
	}

	allowed := make(map[string]bool, len(known))
	for _, column := range known {
		allowed[column] = true
	}
	for _, column := range columns {
		if !allowed[column] {
			return nil, fmt.Errorf("unknown column %q of table %q", column, table)
		}
	}

	var rows []map[string]interface{}
	err := s.db.WithContext(ctx).Table(table).
		Select(strings.Join(columns, ", ")).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ActiveUsers reports users whose post count is at least the average and
// whose most recent post is after the cutoff.
func (s *AdminService) ActiveUsers(ctx context.Context, since time.Time) ([]ActiveUser, error) {
	var rows []ActiveUser
	err := s.db.WithContext(ctx).Raw(`
		WITH user_post_counts AS (
			SELECT u.id AS user_id,
			       COUNT(p.id) AS total_posts,
			       MAX(p.created_at) AS most_recent_post
			FROM users u
			LEFT JOIN user_posts up ON up.user_id = u.id
			LEFT JOIN posts p ON p.id = up.post_id
			GROUP BY u.id
		)
		SELECT user_id, total_posts, most_recent_post
		FROM user_post_counts
		WHERE total_posts >= (SELECT AVG(total_posts) FROM user_post_counts)
		  AND most_recent_post > ?`, since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
