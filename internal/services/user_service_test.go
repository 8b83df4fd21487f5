package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgram/internal/models"
)

func TestFollowAndUnfollow(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")
	bob := createTestUser(t, db, "user00000000000b", "bob")

	require.NoError(t, service.Follow(ctx, alice.ID, bob.ID))

	assert.ErrorIs(t, service.Follow(ctx, alice.ID, bob.ID), ErrAlreadyFollowing)
	assert.ErrorIs(t, service.Follow(ctx, alice.ID, alice.ID), ErrFollowSelf)

	require.NoError(t, service.Unfollow(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, service.Unfollow(ctx, alice.ID, bob.ID), ErrNotFollowing)
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, testLogger())
	ctx := context.Background()

	location := models.Location{ID: "loc0000000000001", Name: "Berlin"}
	require.NoError(t, db.Create(&location).Error)

	birthday := time.Date(1995, time.August, 1, 0, 0, 0, 0, time.UTC)
	displayName := "Alice B."
	bio := "hello"
	alice := models.User{
		ID: "user00000000000a", Username: "alice", PasswordHash: "unused",
		DisplayName: &displayName, Bio: &bio, Birthday: &birthday, LocationID: &location.ID,
	}
	require.NoError(t, db.Create(&alice).Error)
	bob := createTestUser(t, db, "user00000000000b", "bob")
	carol := createTestUser(t, db, "user00000000000c", "carol")

	require.NoError(t, service.Follow(ctx, bob.ID, alice.ID))
	require.NoError(t, service.Follow(ctx, alice.ID, carol.ID))

	profile, err := service.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "Alice B.", profile.DisplayName)
	require.NotNil(t, profile.Zodiac)
	assert.Equal(t, "Leo", *profile.Zodiac)
	require.NotNil(t, profile.Location)
	assert.Equal(t, "Berlin", *profile.Location)
	assert.Equal(t, []string{bob.ID}, profile.Followers)
	assert.Equal(t, []string{carol.ID}, profile.Following)

	_, err = service.GetProfile(ctx, "user000000000099")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetDisplayNameFallsBackToUsername(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, testLogger())
	ctx := context.Background()

	bob := createTestUser(t, db, "user00000000000b", "bob")

	name, err := service.GetDisplayName(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", name)

	display := "Bobby"
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", bob.ID).
		Update("display_name", &display).Error)

	name, err = service.GetDisplayName(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bobby", name)
}

func TestUpdateSettings(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")

	newName := "alice2"
	newBio := "updated"
	require.NoError(t, service.UpdateSettings(ctx, alice.ID, Settings{
		Username: &newName,
		Bio:      &newBio,
	}))

	var stored models.User
	require.NoError(t, db.Where("id = ?", alice.ID).First(&stored).Error)
	assert.Equal(t, "alice2", stored.Username)
	require.NotNil(t, stored.Bio)
	assert.Equal(t, "updated", *stored.Bio)

	empty := ""
	assert.ErrorIs(t, service.UpdateSettings(ctx, alice.ID, Settings{Username: &empty}), ErrInvalidUsername)
	assert.ErrorIs(t, service.UpdateSettings(ctx, alice.ID, Settings{Password: &empty}), ErrInvalidPassword)

	// Nothing to change is a no-op, not an error.
	require.NoError(t, service.UpdateSettings(ctx, alice.ID, Settings{}))
}

func TestUpdateSettingsRejectsTakenUsername(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")
	bob := createTestUser(t, db, "user00000000000b", "bob")

	taken := "alice"
	err := service.UpdateSettings(ctx, bob.ID, Settings{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	var stored models.User
	require.NoError(t, db.Where("id = ?", bob.ID).First(&stored).Error)
	assert.Equal(t, "bob", stored.Username)

	// Re-submitting your own current username is not a collision.
	own := "alice"
	require.NoError(t, service.UpdateSettings(ctx, alice.ID, Settings{Username: &own}))
}

func TestUpdateSettingsRehashesPassword(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")

	newPassword := "brand new secret"
	require.NoError(t, service.UpdateSettings(ctx, alice.ID, Settings{Password: &newPassword}))

	var stored models.User
	require.NoError(t, db.Where("id = ?", alice.ID).First(&stored).Error)
	assert.NotEqual(t, "unused", stored.PasswordHash)
	assert.NotEqual(t, newPassword, stored.PasswordHash)
}

func TestAdminFlag(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")

	isAdmin, err := service.IsAdmin(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	require.NoError(t, service.MakeAdmin(ctx, alice.ID))
	assert.ErrorIs(t, service.MakeAdmin(ctx, alice.ID), ErrAlreadyAdmin)

	isAdmin, err = service.IsAdmin(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	require.NoError(t, service.RemoveAdmin(ctx, alice.ID))
	assert.ErrorIs(t, service.RemoveAdmin(ctx, alice.ID), ErrNotAdmin)
}

func TestGetBlockedUsers(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")
	bob := createTestUser(t, db, "user00000000000b", "bob")
	require.NoError(t, db.Create(&models.Block{BlockerID: alice.ID, BlockedID: bob.ID}).Error)

	blocked, err := service.GetBlockedUsers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, bob.ID, blocked[0].UserID)
	assert.Equal(t, "bob", blocked[0].Username)
	assert.Equal(t, "bob", blocked[0].DisplayName)

	blocked, err = service.GetBlockedUsers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, blocked)
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, testLogger())
	ctx := context.Background()

	alice := createTestUser(t, db, "user00000000000a", "alice")

	require.NoError(t, service.DeleteUser(ctx, alice.ID))
	assert.ErrorIs(t, service.DeleteUser(ctx, alice.ID), ErrUserNotFound)
}
