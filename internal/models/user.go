package models

import (
	"time"
)

// User represents an account in the system
type User struct {
	ID           string     `gorm:"primaryKey;size:16" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:32;not null" json:"username"`
	DisplayName  *string    `gorm:"size:64" json:"display_name,omitempty"`
	PasswordHash string     `gorm:"not null" json:"-"`
	IsAdmin      bool       `gorm:"default:false" json:"is_admin"`
	Bio          *string    `gorm:"type:text" json:"bio,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	LocationID   *string    `gorm:"size:16;index" json:"location_id,omitempty"`
	Location     *Location  `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// Follow represents a directional follower edge between two users
type Follow struct {
	FollowerID string    `gorm:"primaryKey;size:16" json:"follower_id"`
	FolloweeID string    `gorm:"primaryKey;size:16" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for Follow model
func (Follow) TableName() string {
	return "follows"
}

// Block records that one user has blocked another
type Block struct {
	BlockerID string    `gorm:"primaryKey;size:16" json:"blocker_id"`
	BlockedID string    `gorm:"primaryKey;size:16" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Block model
func (Block) TableName() string {
	return "blocks"
}
