package services

import (
	"context"
	"errors"

	"socialgram/internal/models"
	"socialgram/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrSongNotFound     = errors.New("song not found")
	ErrCategoryNotFound = errors.New("product category not found")
)

// CatalogService manages the reference data posts point at: locations,
// songs, and product categories.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListLocations returns all locations.
func (s *CatalogService) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := s.db.WithContext(ctx).Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// CreateLocation inserts a location and returns its generated ID.
func (s *CatalogService) CreateLocation(ctx context.Context, location models.Location) (string, error) {
	location.ID = utils.GenerateID()
	if err := s.db.WithContext(ctx).Create(&location).Error; err != nil {
		return "", err
	}
	return location.ID, nil
}

// UpdateLocation updates a location's name and coordinates.
func (s *CatalogService) UpdateLocation(ctx context.Context, location models.Location) error {
	result := s.db.WithContext(ctx).Model(&models.Location{}).
		Where("id = ?", location.ID).
		Updates(map[string]interface{}{
			"name":      location.Name,
			"latitude":  location.Latitude,
			"longitude": location.Longitude,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// DeleteLocation removes a location.
func (s *CatalogService) DeleteLocation(ctx context.Context, locationID string) error {
	result := s.db.WithContext(ctx).Where("id = ?", locationID).Delete(&models.Location{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}

// GetLocationIDByName resolves a location name to its ID.
func (s *CatalogService) GetLocationIDByName(ctx context.Context, name string) (string, error) {
	var location models.Location
	err := s.db.WithContext(ctx).Select("id").Where("name = ?", name).First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrLocationNotFound
	}
	if err != nil {
		return "", err
	}
	return location.ID, nil
}

// LocationPosts is the set of posts tagged with one location.
type LocationPosts struct {
	LocationName string `json:"locationName"`
	Posts        []struct {
		ID      string  `json:"id"`
		Caption *string `json:"caption"`
	} `json:"posts"`
}

// GetPostsByLocation lists the posts tagged with a location.
func (s *CatalogService) GetPostsByLocation(ctx context.Context, locationID string) (*LocationPosts, error) {
	var location models.Location
	err := s.db.WithContext(ctx).Where("id = ?", locationID).First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, err
	}

	result := LocationPosts{LocationName: location.Name}
	err = s.db.WithContext(ctx).Model(&models.Post{}).
		Select("id, caption").
		Where("location_id = ?", locationID).
		Scan(&result.Posts).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListSongs returns all songs.
func (s *CatalogService) ListSongs(ctx context.Context) ([]models.Song, error) {
	var songs []models.Song
	if err := s.db.WithContext(ctx).Find(&songs).Error; err != nil {
		return nil, err
	}
	return songs, nil
}

// UpdateSong updates a song's title, artist, and URL.
func (s *CatalogService) UpdateSong(ctx context.Context, song models.Song) error {
	result := s.db.WithContext(ctx).Model(&models.Song{}).
		Where("id = ?", song.ID).
		Updates(map[string]interface{}{
			"title":  song.Title,
			"artist": song.Artist,
			"url":    song.URL,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// ListProductCategories returns all product categories.
func (s *CatalogService) ListProductCategories(ctx context.Context) ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// AddProductCategory inserts a category and returns its generated ID.
func (s *CatalogService) AddProductCategory(ctx context.Context, name string) (string, error) {
	category := models.ProductCategory{ID: utils.GenerateID(), Name: name}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return "", err
	}
	return category.ID, nil
}

// UpdateProductCategory renames a category.
func (s *CatalogService) UpdateProductCategory(ctx context.Context, categoryID, name string) error {
	result := s.db.WithContext(ctx).Model(&models.ProductCategory{}).
		Where("id = ?", categoryID).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// DeleteProductCategory removes a category.
func (s *CatalogService) DeleteProductCategory(ctx context.Context, categoryID string) error {
	result := s.db.WithContext(ctx).Where("id = ?", categoryID).Delete(&models.ProductCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
