package models

// Location is a tagged place that posts and user profiles can reference
type Location struct {
	ID        string   `gorm:"primaryKey;size:16" json:"id"`
	Name      string   `gorm:"size:128;not null" json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
	City      string   `gorm:"size:64" json:"city"`
	Country   string   `gorm:"size:64" json:"country"`
}

// TableName specifies the table name for Location model
func (Location) TableName() string {
	return "locations"
}

// Song can be attached to a story
type Song struct {
	ID     string `gorm:"primaryKey;size:16" json:"id"`
	Title  string `gorm:"size:128;not null" json:"title"`
	Artist string `gorm:"size:128;not null" json:"artist"`
	URL    string `gorm:"not null" json:"url"`
}

// TableName specifies the table name for Song model
func (Song) TableName() string {
	return "songs"
}

// ProductCategory classifies listing posts
type ProductCategory struct {
	ID   string `gorm:"primaryKey;size:16" json:"id"`
	Name string `gorm:"size:64;not null" json:"name"`
}

// TableName specifies the table name for ProductCategory model
func (ProductCategory) TableName() string {
	return "product_categories"
}
