package models

import (
	"time"
)

// Ad is an advertisement with a remaining-impression budget
type Ad struct {
	ID             string    `gorm:"primaryKey;size:16" json:"id"`
	ImageURL       string    `gorm:"not null" json:"image_url"`
	ClickURL       string    `gorm:"not null" json:"click_url"`
	RemainingViews int       `gorm:"not null" json:"remaining_views"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name for Ad model
func (Ad) TableName() string {
	return "ads"
}

// AdShowing is one impression of an ad to one viewer, trackable for clicks
type AdShowing struct {
	ID      string    `gorm:"primaryKey;size:16" json:"id"`
	AdID    string    `gorm:"size:16;not null;index" json:"ad_id"`
	UserID  string    `gorm:"size:16;not null;index" json:"user_id"`
	ShownAt time.Time `gorm:"not null" json:"shown_at"`
	Clicked bool      `gorm:"default:false" json:"clicked"`
}

// TableName specifies the table name for AdShowing model
func (AdShowing) TableName() string {
	return "ad_showings"
}

// AdRole is the collaboration edge between a user and an ad
type AdRole struct {
	UserID string     `gorm:"primaryKey;size:16" json:"user_id"`
	AdID   string     `gorm:"primaryKey;size:16" json:"ad_id"`
	Role   CollabRole `gorm:"not null" json:"role"`
}

// TableName specifies the table name for AdRole model
func (AdRole) TableName() string {
	return "ad_roles"
}
