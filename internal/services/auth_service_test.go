package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db, testLogger())
	ctx := context.Background()

	first, err := service.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.True(t, first.IsAdmin)
	assert.Len(t, first.ID, 16)

	second, err := service.Register(ctx, "bob", "secret")
	require.NoError(t, err)
	assert.False(t, second.IsAdmin)
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db, testLogger())
	ctx := context.Background()

	_, err := service.Register(ctx, "", "secret")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = service.Register(ctx, strings.Repeat("x", 33), "secret")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = service.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db, testLogger())
	ctx := context.Background()

	_, err := service.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	_, err = service.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db, testLogger())
	ctx := context.Background()

	registered, err := service.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	user, err := service.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = service.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = service.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestUsernameExists(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db, testLogger())
	ctx := context.Background()

	_, err := service.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	exists, err := service.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = service.UsernameExists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}
