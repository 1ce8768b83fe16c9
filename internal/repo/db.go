// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and schema migrations.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = gorm.ErrRecordNotFound

// sqlitePragmas are applied to every pooled connection through the DSN.
// foreign_keys and busy_timeout are per-connection settings in SQLite.
// Transactions begin IMMEDIATE: a deferred one that reads before writing
// fails with SQLITE_BUSY instead of waiting when another connection commits
// first.
const sqlitePragmas = "_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

// OpenSQLite opens (or creates) a SQLite database, applies PRAGMAs, sizes the
// connection pool and registers the OpenTelemetry tracing plugin.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?"+sqlitePragmas), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Spans only; request metrics are exported by the HTTP middleware.
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for every persisted model.
// Order matters: referenced tables come first.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.FoodItem{},
		&domain.FoodLog{},
		&domain.WeightLog{},
		&domain.SearchCacheEntry{},
	)
}
