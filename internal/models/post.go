package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostKind is the explicit post subtype, decided once at creation time.
type PostKind string

const (
	PostKindNormal  PostKind = "normal"
	PostKindListing PostKind = "listing"
	PostKindStory   PostKind = "story"
)

// CollabRole is a user's role on a post or ad collaboration edge
type CollabRole int

const (
	RolePending      CollabRole = 0 // requested, not yet accepted
	RoleCollaborator CollabRole = 1 // accepted collaborator
	RoleCreator      CollabRole = 2
)

// Post represents a post of any kind. Only stories carry an expiry and
// only listings carry a listing row; the kind column makes the variants
// mutually exclusive instead of inferring them from nullable columns.
type Post struct {
	ID         string     `gorm:"primaryKey;size:16" json:"id"`
	Kind       PostKind   `gorm:"size:16;not null;index" json:"kind"`
	Caption    *string    `gorm:"size:4000" json:"caption,omitempty"`
	LocationID *string    `gorm:"size:16;index" json:"location_id,omitempty"`
	ExpiresAt  *time.Time `gorm:"index" json:"expires_at,omitempty"`
	SongID     *string    `gorm:"size:16" json:"song_id,omitempty"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for Post model
func (Post) TableName() string {
	return "posts"
}

// Listing holds the marketplace fields of a listing post
type Listing struct {
	PostID     string          `gorm:"primaryKey;size:16" json:"post_id"`
	Title      string          `gorm:"size:32;not null" json:"title"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CategoryID string          `gorm:"size:16;not null;index" json:"category_id"`
}

// TableName specifies the table name for Listing model
func (Listing) TableName() string {
	return "listings"
}

// UserPost is the collaboration edge between a user and a post
type UserPost struct {
	UserID string     `gorm:"primaryKey;size:16" json:"user_id"`
	PostID string     `gorm:"primaryKey;size:16" json:"post_id"`
	Role   CollabRole `gorm:"not null" json:"role"`
}

// TableName specifies the table name for UserPost model
func (UserPost) TableName() string {
	return "user_posts"
}

// Media is one image or video attached to a post
type Media struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	URL         string `gorm:"not null" json:"url"`
	PostID      string `gorm:"size:16;not null;index" json:"post_id"`
	UserID      string `gorm:"size:16;not null" json:"user_id"`
	Position    int    `gorm:"not null" json:"position"`
	ContentType string `gorm:"size:64;not null" json:"content_type"`
}

// TableName specifies the table name for Media model
func (Media) TableName() string {
	return "media"
}

// Comment is a user comment on a post
type Comment struct {
	ID        string    `gorm:"primaryKey;size:16" json:"id"`
	PostID    string    `gorm:"size:16;not null;index" json:"post_id"`
	UserID    string    `gorm:"size:16;not null" json:"user_id"`
	Text      string    `gorm:"size:4000;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Comment model
func (Comment) TableName() string {
	return "comments"
}

// Like records that a user liked a post
type Like struct {
	UserID    string    `gorm:"primaryKey;size:16" json:"user_id"`
	PostID    string    `gorm:"primaryKey;size:16" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Like model
func (Like) TableName() string {
	return "likes"
}
