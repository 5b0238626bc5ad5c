// Package database owns the SQLite connection lifecycle. The handle is
// opened once by the process entry point and passed into the components
// that need it; nothing here is lazily initialized.
package database

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"tandoor/internal/models"
)

// Open connects to the SQLite database at path and migrates the schema
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.Order{},
		&models.Ingredient{},
	).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
