package db

import (
	"fmt"
	"strings"

	"github.com/mmada170699-cpu/RiyadhRE/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the database and migrates the schema. A postgres DSN is used
// when DATABASE_URL is set; otherwise a local sqlite file keeps moderation
// history across restarts without extra infrastructure.
func Init(databaseURL string) error {
	var err error
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if databaseURL != "" && strings.HasPrefix(databaseURL, "postgres") {
		DB, err = gorm.Open(postgres.Open(databaseURL), cfg)
	} else {
		path := databaseURL
		if path == "" {
			path = "riyadhre.db"
		}
		DB, err = gorm.Open(sqlite.Open(path), cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := DB.AutoMigrate(&models.Listing{}, &models.Offender{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
