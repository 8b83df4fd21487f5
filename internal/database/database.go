package database

import (
	"fmt"

	"socialgram/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a PostgreSQL connection with a bounded pool and returns it.
// The pool is the only synchronization point in the system; callers block
// on acquire when it is exhausted, so the bound doubles as backpressure.
func Connect(dsn string, maxConns int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)

	return db, nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Block{},
		&models.Location{},
		&models.Song{},
		&models.ProductCategory{},
		&models.Post{},
		&models.Listing{},
		&models.UserPost{},
		&models.Media{},
		&models.Comment{},
		&models.Like{},
		&models.Ad{},
		&models.AdShowing{},
		&models.AdRole{},
		&models.MessageGroup{},
		&models.MessageGroupMember{},
		&models.Message{},
	)
}
