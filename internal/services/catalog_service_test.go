package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgram/internal/models"
)

func TestLocationCRUD(t *testing.T) {
	db := setupTestDB(t)
	service := NewCatalogService(db)
	ctx := context.Background()

	id, err := service.CreateLocation(ctx, models.Location{
		Name: "Berlin", Latitude: 52.52, Longitude: 13.405, City: "Berlin", Country: "Germany",
	})
	require.NoError(t, err)
	assert.Len(t, id, 16)

	resolved, err := service.GetLocationIDByName(ctx, "Berlin")
	require.NoError(t, err)
	assert.Equal(t, id, resolved)

	require.NoError(t, service.UpdateLocation(ctx, models.Location{
		ID: id, Name: "Berlin Mitte", Latitude: 52.53, Longitude: 13.40,
	}))
	assert.ErrorIs(t, service.UpdateLocation(ctx, models.Location{ID: "loc0000000000099"}), ErrLocationNotFound)

	locations, err := service.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Berlin Mitte", locations[0].Name)

	require.NoError(t, service.DeleteLocation(ctx, id))
	assert.ErrorIs(t, service.DeleteLocation(ctx, id), ErrLocationNotFound)

	_, err = service.GetLocationIDByName(ctx, "Berlin Mitte")
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestGetPostsByLocation(t *testing.T) {
	db := setupTestDB(t)
	service := NewCatalogService(db)
	ctx := context.Background()

	locationID, err := service.CreateLocation(ctx, models.Location{Name: "Berlin"})
	require.NoError(t, err)

	caption := "tagged"
	tagged := models.Post{ID: "post000000000001", Kind: models.PostKindNormal, Caption: &caption, LocationID: &locationID, CreatedAt: time.Now()}
	untagged := models.Post{ID: "post000000000002", Kind: models.PostKindNormal, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&tagged).Error)
	require.NoError(t, db.Create(&untagged).Error)

	result, err := service.GetPostsByLocation(ctx, locationID)
	require.NoError(t, err)
	assert.Equal(t, "Berlin", result.LocationName)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, tagged.ID, result.Posts[0].ID)

	_, err = service.GetPostsByLocation(ctx, "loc0000000000099")
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestProductCategoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	service := NewCatalogService(db)
	ctx := context.Background()

	id, err := service.AddProductCategory(ctx, "Bikes")
	require.NoError(t, err)

	require.NoError(t, service.UpdateProductCategory(ctx, id, "Bicycles"))
	assert.ErrorIs(t, service.UpdateProductCategory(ctx, "cat0000000000099", "x"), ErrCategoryNotFound)

	categories, err := service.ListProductCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Bicycles", categories[0].Name)

	require.NoError(t, service.DeleteProductCategory(ctx, id))
	assert.ErrorIs(t, service.DeleteProductCategory(ctx, id), ErrCategoryNotFound)
}

func TestUpdateSong(t *testing.T) {
	db := setupTestDB(t)
	service := NewCatalogService(db)
	ctx := context.Background()

	song := models.Song{ID: "song000000000001", Title: "Track", Artist: "Band", URL: "https://old"}
	require.NoError(t, db.Create(&song).Error)

	require.NoError(t, service.UpdateSong(ctx, models.Song{
		ID: song.ID, Title: "Track v2", Artist: "Band", URL: "https://new",
	}))
	assert.ErrorIs(t, service.UpdateSong(ctx, models.Song{ID: "song000000000099"}), ErrSongNotFound)

	songs, err := service.ListSongs(ctx)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "Track v2", songs[0].Title)
	assert.Equal(t, "https://new", songs[0].URL)
}
