package auth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socialgram/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func TestAuthenticateOutcomes(t *testing.T) {
	db := setupTestDB(t)

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	user := models.User{ID: "user000000000001", Username: "alice", PasswordHash: hash}
	require.NoError(t, db.Create(&user).Error)

	t.Run("no claim is anonymous", func(t *testing.T) {
		identity, err := Authenticate(db, "", "whatever")
		require.NoError(t, err)
		assert.Equal(t, Identity{}, identity)
	})

	t.Run("unknown user is anonymous", func(t *testing.T) {
		identity, err := Authenticate(db, "user000000000099", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, Identity{}, identity)
	})

	t.Run("correct secret authenticates", func(t *testing.T) {
		identity, err := Authenticate(db, user.ID, "correct horse")
		require.NoError(t, err)
		assert.Equal(t, Identity{Authenticated: true, UserID: user.ID}, identity)
	})

	t.Run("wrong secret keeps user reference", func(t *testing.T) {
		identity, err := Authenticate(db, user.ID, "wrong")
		require.NoError(t, err)
		assert.Equal(t, Identity{Authenticated: false, UserID: user.ID}, identity)
	})

	t.Run("absent secret keeps user reference", func(t *testing.T) {
		identity, err := Authenticate(db, user.ID, "")
		require.NoError(t, err)
		assert.Equal(t, Identity{Authenticated: false, UserID: user.ID}, identity)
	})
}
