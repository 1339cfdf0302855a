package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite dialect

	"pantrybot/internal/models"
)

// Open connects to the database using the configured driver ("sqlite3" or
// "postgres") and DSN. The returned handle is injected into the rest of the
// application; there is no package-level instance.
func Open(driver, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	return db, nil
}

// Migrate creates or updates all required tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PantryItem{},
		&models.Recipe{},
	).Error
}
