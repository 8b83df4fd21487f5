package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgram/internal/models"
)

func TestShowBannerAdDecrementsBudget(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdService(db, testLogger())
	ctx := context.Background()

	viewer := createTestUser(t, db, "user000000viewer", "viewer")
	ad := models.Ad{ID: "ad00000000000001", ImageURL: "/img", ClickURL: "https://example.com", RemainingViews: 2}
	require.NoError(t, db.Create(&ad).Error)

	banner, err := service.ShowBannerAd(ctx, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, "/img", banner.ImageURL)
	assert.Equal(t, "https://example.com", banner.ClickURL)
	assert.NotEmpty(t, banner.ShowingID)

	var stored models.Ad
	require.NoError(t, db.Where("id = ?", ad.ID).First(&stored).Error)
	assert.Equal(t, 1, stored.RemainingViews)

	var showing models.AdShowing
	require.NoError(t, db.Where("id = ?", banner.ShowingID).First(&showing).Error)
	assert.Equal(t, ad.ID, showing.AdID)
	assert.Equal(t, viewer.ID, showing.UserID)
	assert.False(t, showing.Clicked)
}

func TestShowBannerAdExhaustsBudget(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdService(db, testLogger())
	ctx := context.Background()

	viewer := createTestUser(t, db, "user000000viewer", "viewer")
	ad := models.Ad{ID: "ad00000000000001", ImageURL: "/img", ClickURL: "https://example.com", RemainingViews: 1}
	require.NoError(t, db.Create(&ad).Error)

	_, err := service.ShowBannerAd(ctx, viewer.ID)
	require.NoError(t, err)

	_, err = service.ShowBannerAd(ctx, viewer.ID)
	assert.ErrorIs(t, err, ErrNoAdAvailable)
}

func TestClickAd(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdService(db, testLogger())
	ctx := context.Background()

	viewer := createTestUser(t, db, "user000000viewer", "viewer")
	ad := models.Ad{ID: "ad00000000000001", ImageURL: "/img", ClickURL: "https://example.com", RemainingViews: 5}
	require.NoError(t, db.Create(&ad).Error)

	banner, err := service.ShowBannerAd(ctx, viewer.ID)
	require.NoError(t, err)

	require.NoError(t, service.ClickAd(ctx, banner.ShowingID))

	var showing models.AdShowing
	require.NoError(t, db.Where("id = ?", banner.ShowingID).First(&showing).Error)
	assert.True(t, showing.Clicked)

	assert.ErrorIs(t, service.ClickAd(ctx, "showing000000099"), ErrShowingNotFound)
}

func TestGetAdClicks(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdService(db, testLogger())
	ctx := context.Background()

	require.NoError(t, db.Create(&models.AdShowing{ID: "show000000000001", AdID: "ad1", UserID: "u1", ShownAt: time.Now(), Clicked: true}).Error)
	require.NoError(t, db.Create(&models.AdShowing{ID: "show000000000002", AdID: "ad1", UserID: "u2", ShownAt: time.Now(), Clicked: true}).Error)
	require.NoError(t, db.Create(&models.AdShowing{ID: "show000000000003", AdID: "ad2", UserID: "u1", ShownAt: time.Now(), Clicked: false}).Error)

	clicks, err := service.GetAdClicks(ctx)
	require.NoError(t, err)
	require.Len(t, clicks, 1)
	assert.Equal(t, "ad1", clicks[0].AdID)
	assert.Equal(t, int64(2), clicks[0].Clicks)
}

func TestGetSuccessfulAds(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdService(db, testLogger())
	ctx := context.Background()

	// ad1: 2 of 2 clicked. ad2: 1 of 4 clicked.
	showings := []models.AdShowing{
		{ID: "show000000000001", AdID: "ad1", UserID: "u1", ShownAt: time.Now(), Clicked: true},
		{ID: "show000000000002", AdID: "ad1", UserID: "u2", ShownAt: time.Now(), Clicked: true},
		{ID: "show000000000003", AdID: "ad2", UserID: "u1", ShownAt: time.Now(), Clicked: true},
		{ID: "show000000000004", AdID: "ad2", UserID: "u2", ShownAt: time.Now(), Clicked: false},
		{ID: "show000000000005", AdID: "ad2", UserID: "u3", ShownAt: time.Now(), Clicked: false},
		{ID: "show000000000006", AdID: "ad2", UserID: "u4", ShownAt: time.Now(), Clicked: false},
	}
	for i := range showings {
		require.NoError(t, db.Create(&showings[i]).Error)
	}

	ads, err := service.GetSuccessfulAds(ctx, 0.5)
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, "ad1", ads[0].AdID)
	assert.Equal(t, int64(2), ads[0].TotalShows)
	assert.Equal(t, int64(2), ads[0].TotalClicks)
}

func TestGetViewedByAllAds(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")
	bob := createTestUser(t, db, "user00000000000b", "bob")

	seen := models.Ad{ID: "ad00000000000001", ImageURL: "/a", ClickURL: "https://a", RemainingViews: 0}
	partial := models.Ad{ID: "ad00000000000002", ImageURL: "/b", ClickURL: "https://b", RemainingViews: 0}
	require.NoError(t, db.Create(&seen).Error)
	require.NoError(t, db.Create(&partial).Error)

	showings := []models.AdShowing{
		{ID: "show000000000001", AdID: seen.ID, UserID: alice.ID, ShownAt: time.Now()},
		{ID: "show000000000002", AdID: seen.ID, UserID: bob.ID, ShownAt: time.Now()},
		{ID: "show000000000003", AdID: partial.ID, UserID: alice.ID, ShownAt: time.Now()},
	}
	for i := range showings {
		require.NoError(t, db.Create(&showings[i]).Error)
	}

	ids, err := service.GetViewedByAllAds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{seen.ID}, ids)
}
