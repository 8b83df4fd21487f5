package services

import (
	"context"
	"errors"
	"time"

	"socialgram/internal/models"
	"socialgram/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNoAdAvailable   = errors.New("no ad with remaining views")
	ErrShowingNotFound = errors.New("ad showing not found")
)

// BannerAd is what the client needs to render one ad impression. The
// showing ID is the opaque handle used later for click attribution.
type BannerAd struct {
	ImageURL  string `json:"imageURL"`
	ClickURL  string `json:"clickURL"`
	ShowingID string `json:"showingID"`
}

// AdService handles ad serving and click attribution
type AdService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAdService creates a new AdService
func NewAdService(db *gorm.DB, logger *zap.Logger) *AdService {
	return &AdService{db: db, logger: logger}
}

// ShowBannerAd picks a random ad with budget left, decrements the budget
// and records the showing in one transaction, and returns the impression.
func (s *AdService) ShowBannerAd(ctx context.Context, viewerID string) (*BannerAd, error) {
	var banner *BannerAd
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ad models.Ad
		err := tx.Where("remaining_views > 0").Order("RANDOM()").First(&ad).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoAdAvailable
		}
		if err != nil {
			return err
		}

		// Guard the decrement so a concurrent impression cannot push the
		// budget below zero.
		result := tx.Model(&models.Ad{}).
			Where("id = ? AND remaining_views > 0", ad.ID).
			Update("remaining_views", gorm.Expr("remaining_views - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNoAdAvailable
		}

		showing := models.AdShowing{
			ID:      utils.GenerateID(),
			AdID:    ad.ID,
			UserID:  viewerID,
			ShownAt: time.Now(),
		}
		if err := tx.Create(&showing).Error; err != nil {
			return err
		}

		banner = &BannerAd{
			ImageURL:  ad.ImageURL,
			ClickURL:  ad.ClickURL,
			ShowingID: showing.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return banner, nil
}

// ClickAd flips the click flag on an existing showing.
func (s *AdService) ClickAd(ctx context.Context, showingID string) error {
	result := s.db.WithContext(ctx).Model(&models.AdShowing{}).
		Where("id = ?", showingID).Update("clicked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShowingNotFound
	}
	return nil
}

// AdClicks is the per-ad click count.
type AdClicks struct {
	AdID   string `json:"ad_id"`
	Clicks int64  `json:"clicks"`
}

// GetAdClicks reports the number of clicks each clicked ad received.
func (s *AdService) GetAdClicks(ctx context.Context) ([]AdClicks, error) {
	var rows []AdClicks
	err := s.db.WithContext(ctx).Model(&models.AdShowing{}).
		Select("ad_id, COUNT(*) AS clicks").
		Where("clicked = ?", true).
		Group("ad_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AdPerformance is the impression/click summary for one ad.
type AdPerformance struct {
	AdID        string `json:"ad_id"`
	TotalShows  int64  `json:"total_shows"`
	TotalClicks int64  `json:"total_clicks"`
}

// GetSuccessfulAds returns ads whose click rate exceeds the threshold.
func (s *AdService) GetSuccessfulAds(ctx context.Context, clickRate float64) ([]AdPerformance, error) {
	var rows []AdPerformance
	err := s.db.WithContext(ctx).Model(&models.AdShowing{}).
		Select("ad_id, COUNT(*) AS total_shows, SUM(CASE WHEN clicked THEN 1 ELSE 0 END) AS total_clicks").
		Group("ad_id").
		Having("SUM(CASE WHEN clicked THEN 1 ELSE 0 END) * 1.0 / COUNT(*) > ?", clickRate).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetViewedByAllAds returns the IDs of ads that every user has seen at
// least once.
func (s *AdService) GetViewedByAllAds(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Raw(`
		SELECT a.id
		FROM ads a
		WHERE NOT EXISTS (
			SELECT u.id
			FROM users u
			WHERE NOT EXISTS (
				SELECT 1
				FROM ad_showings s
				WHERE s.ad_id = a.id AND s.user_id = u.id
			)
		)`).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
