package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// InMemory is the reserved path meaning "private, ephemeral, in-memory
// database". Handles opened with it are never shared.
const InMemory = ":memory:"

// Options holds settings for opening a SQLite database.
type Options struct {
	// PingTimeout bounds the connectivity check performed at open.
	PingTimeout time.Duration
	// WALMode enables write-ahead logging for file databases.
	WALMode bool
	// BusyTimeout is how long SQLite waits on SQLITE_BUSY before failing.
	BusyTimeout time.Duration
}

// DefaultOptions returns settings suited to an embedded single-writer store.
func DefaultOptions() Options {
	return Options{
		PingTimeout: 5 * time.Second,
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

// Open opens the single physical connection to the database at path,
// creating parent directories as needed. The returned handle has its pool
// pinned to one connection; it never recycles, so a pending transaction
// and plain reads always observe the same connection state.
func Open(ctx context.Context, path string, opts Options) (*sql.DB, error) {
	if path == InMemory {
		return OpenInMemory(ctx)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return open(ctx, buildDSN(path, opts), opts)
}

// OpenInMemory opens a fresh private in-memory database. Every call
// returns an independent database with no backing file.
func OpenInMemory(ctx context.Context) (*sql.DB, error) {
	opts := DefaultOptions()
	opts.WALMode = false // WAL is not supported for in-memory databases
	return open(ctx, InMemory, opts)
}

func open(ctx context.Context, dsn string, opts Options) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// One physical connection, kept alive for the handle's whole life.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := applyPragmaSettings(ctx, db, opts); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply PRAGMA settings: %w", err)
	}

	return db, nil
}

// buildDSN builds the DSN string with minimal parameters. Most settings
// are applied through PRAGMA statements after the connection is open.
func buildDSN(path string, opts Options) string {
	params := []string{}

	if opts.BusyTimeout > 0 {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", opts.BusyTimeout.Milliseconds()))
	}

	if len(params) > 0 {
		return path + "?" + strings.Join(params, "&")
	}
	return path
}

// applyPragmaSettings applies PRAGMA settings to an open connection.
// Applying them after open works regardless of driver DSN conventions.
func applyPragmaSettings(ctx context.Context, db *sql.DB, opts Options) error {
	pragmas := make([]string, 0, 3)

	if opts.WALMode {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}

	pragmas = append(pragmas, "PRAGMA synchronous = NORMAL")

	if opts.BusyTimeout > 0 {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA busy_timeout = %d", opts.BusyTimeout.Milliseconds()))
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}
