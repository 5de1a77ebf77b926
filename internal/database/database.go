package database

import (
	"fmt"

	"github.com/campus-buzz/campus-events-api/internal/config"
	"github.com/campus-buzz/campus-events-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the SQLite database and migrates the schema. TranslateError
// lets callers match duplicate-key violations with gorm.ErrDuplicatedKey,
// which backs the unique constraints on emails and (event, user) pairs.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer; a one-connection pool avoids
	// "database is locked" errors under concurrent registrations.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
		&models.Feedback{},
		&models.APIKey{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}
