package db

import (
	"fmt" // Error wrapping

	"payment_tracker/internal/config" // Configuration

	"github.com/glebarez/sqlite" // Pure Go SQLite driver for GORM
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // Postgres driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger levels
)

// Dialector picks the GORM driver for the configured database
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil // MySQL / MariaDB
	case config.DriverPostgres:
		return postgres.Open(dsn), nil // PostgreSQL
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil // Local file or in-memory database
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// Open connects to the configured database
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	level := logger.Warn // Show slow queries and errors while developing
	if cfg.IsProd {
		level = logger.Silent // Request logging covers production
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level), // GORM log level
		TranslateError: true,                          // Map unique violations to gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver == config.DriverSQLite {
		sqlDB, err := db.DB() // Underlying pool
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1) // One connection keeps an in-memory database alive and serializes writers
	}
	return db, nil
}
