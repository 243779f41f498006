// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"appfiy/backoffice/internal/db"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory SQLite database and an sqlx handle
// on the same connection.
func NewTestDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// every new connection to :memory: is a fresh empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(context.Background(), gdb); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return gdb, sqlx.NewDb(sqlDB, "sqlite3")
}
