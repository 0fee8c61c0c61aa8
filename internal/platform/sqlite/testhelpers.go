package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// NewTestDBInMemory opens an in-memory database for tests. The database
// is closed automatically when the test finishes.
func NewTestDBInMemory(t *testing.T) *sql.DB {
	t.Helper()

	db, err := OpenInMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to create in-memory test DB: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// NewTestDBFile opens a file-backed database in a per-test temporary
// directory and returns it with its path. Cleanup is automatic.
func NewTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := Open(context.Background(), path, DefaultOptions())
	if err != nil {
		t.Fatalf("Failed to create file test DB: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, path
}
