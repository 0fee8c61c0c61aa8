package shelf

import (
	"context"
	"path/filepath"
	"testing"
)

// newTestRegistry creates a registry that is force-closed when the test
// finishes, so leaked handles never bleed between tests.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := NewRegistry()
	t.Cleanup(func() {
		_ = reg.Close()
	})
	return reg
}

// openTestShelf opens a shelf and schedules its close.
func openTestShelf(t *testing.T, reg *Registry, opts Options) *Shelf {
	t.Helper()

	sh, err := reg.Open(context.Background(), opts)
	if err != nil {
		t.Fatalf("Failed to open shelf: %v", err)
	}
	t.Cleanup(func() {
		_ = sh.Close()
	})
	return sh
}

// testDBPath returns a database path in a per-test temp directory.
func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "shelf.db")
}
