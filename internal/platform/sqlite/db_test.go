package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, 5*time.Second, opts.PingTimeout)
	assert.Equal(t, 5*time.Second, opts.BusyTimeout)
	assert.True(t, opts.WALMode)
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		path string
		opts Options
		want string
	}{
		{
			name: "no parameters",
			path: "app.db",
			opts: Options{},
			want: "app.db",
		},
		{
			name: "busy timeout",
			path: "app.db",
			opts: Options{BusyTimeout: 5 * time.Second},
			want: "app.db?_busy_timeout=5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildDSN(tt.path, tt.opts))
		})
	}
}

func TestOpenCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "app.db")

	db, err := Open(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestOpenInMemoryIsIndependent(t *testing.T) {
	ctx := context.Background()

	a := NewTestDBInMemory(t)
	b := NewTestDBInMemory(t)

	_, err := a.ExecContext(ctx, "CREATE TABLE probe (id INTEGER)")
	require.NoError(t, err)

	// The table must not exist in the second database.
	var count int
	err = b.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='probe'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOpenAppliesWALMode(t *testing.T) {
	db, _ := NewTestDBFile(t)

	var mode string
	err := db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)
}

func TestOpenInMemoryViaSentinelPath(t *testing.T) {
	db, err := Open(context.Background(), InMemory, DefaultOptions())
	require.NoError(t, err)
	defer db.Close()

	var mode string
	err = db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode)
	require.NoError(t, err)
	// WAL is silently skipped for in-memory databases.
	assert.Equal(t, "memory", mode)
}
