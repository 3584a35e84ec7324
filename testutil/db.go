// Package testutil provides shared helpers for package tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/lp-esports/sports-day-system/db"
)

// NewTestDB opens a throwaway SQLite database in the test's temp directory
// and applies the schema migration (no demo seed data). The connection is
// closed when the test finishes.
func NewTestDB(t *testing.T) (*sql.DB, db.Dialect) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.sqlite")
	conn, dialect, err := db.Connect("", path, 5*time.Second)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.MigrateUpTo(conn, dialect, 1); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return conn, dialect
}
