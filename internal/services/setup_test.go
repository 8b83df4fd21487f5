package services

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socialgram/internal/database"
	"socialgram/internal/models"
)

// setupTestDB opens a fresh in-memory database named after the test, so
// parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// createTestUser inserts a user directly. The password hash is a throwaway
// because only the auth tests exercise credential checks.
func createTestUser(t *testing.T, db *gorm.DB, id, username string) models.User {
	user := models.User{ID: id, Username: username, PasswordHash: "unused"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", username, err)
	}
	return user
}
