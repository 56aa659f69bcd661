// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/isdelr/taskdesk-be/internal/database"
)

// New returns a migrated SQLite database living in the test's temp dir.
// It is closed automatically when the test ends.
func New(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.New(database.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
