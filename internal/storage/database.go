package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ericogr/vino-arena/internal/battle"
)

// OpenAndMigrate opens the SQLite database and keeps the schema updated via
// AutoMigrate. Cellar rows are created per player, not seeded globally.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&battle.Wine{}, &battle.Battle{}, &battleStateRow{}, &battle.Profile{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
