package database

import (
	"fmt"

	"congress-trade-bot-go/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDatabase creates a new database connection and performs auto-migration.
// Existing rows are kept; the bot relies on persisted disclosures to avoid
// re-signaling trades across restarts.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.DisclosedTrade{},
		&models.SignalRecord{},
		&models.ExecutionRecord{},
		&models.ClosedPosition{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return db, nil
}
