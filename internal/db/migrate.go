package db

import (
	"payment_tracker/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every table managed by the application
func Models() []any {
	return []any{&domain.User{}, &domain.Payment{}}
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing columns, the unique username index and the payment indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		return err // Let the caller decide how fatal this is
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
