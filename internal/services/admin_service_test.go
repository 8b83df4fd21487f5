package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgram/internal/models"
	"socialgram/internal/utils"
)

func TestTablesAndAttributes(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)

	tables := service.Tables()
	assert.Contains(t, tables, "users")
	assert.Contains(t, tables, "posts")
	assert.Contains(t, tables, "messages")

	columns, err := service.Attributes("users")
	require.NoError(t, err)
	assert.Contains(t, columns, "username")
	assert.NotContains(t, columns, "password_hash")

	_, err = service.Attributes("pg_catalog")
	assert.Error(t, err)
}

func TestSelectedAttributes(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)
	ctx := context.Background()

	createTestUser(t, db, "user00000000000a", "alice")
	createTestUser(t, db, "user00000000000b", "bob")

	rows, err := service.SelectedAttributes(ctx, "users", []string{"id", "username"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Contains(t, row, "id")
		assert.Contains(t, row, "username")
		assert.NotContains(t, row, "password_hash")
	}
}

func TestSelectedAttributesRejectsUnknownInput(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)
	ctx := context.Background()

	_, err := service.SelectedAttributes(ctx, "users", []string{"password_hash"})
	assert.Error(t, err)

	_, err = service.SelectedAttributes(ctx, "users", []string{"id; DROP TABLE users"})
	assert.Error(t, err)

	_, err = service.SelectedAttributes(ctx, "not_a_table", []string{"id"})
	assert.Error(t, err)

	_, err = service.SelectedAttributes(ctx, "users", nil)
	assert.Error(t, err)
}

func TestActiveUsers(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)
	ctx := context.Background()

	active := createTestUser(t, db, "user000000active", "active")
	idle := createTestUser(t, db, "user0000000idle0", "idle")

	// The active user has two recent posts, the idle user one old post.
	for _, p := range []struct {
		userID    string
		createdAt time.Time
	}{
		{active.ID, time.Now().Add(-time.Hour)},
		{active.ID, time.Now().Add(-2 * time.Hour)},
		{idle.ID, time.Now().AddDate(0, -6, 0)},
	} {
		post := models.Post{ID: utils.GenerateID(), Kind: models.PostKindNormal, CreatedAt: p.createdAt}
		require.NoError(t, db.Create(&post).Error)
		require.NoError(t, db.Create(&models.UserPost{
			UserID: p.userID, PostID: post.ID, Role: models.RoleCreator,
		}).Error)
	}

	rows, err := service.ActiveUsers(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, active.ID, rows[0].UserID)
	assert.Equal(t, int64(2), rows[0].TotalPosts)
}
