package shelf

import "context"

// Map is the associative-container contract a Shelf implements. Consumers
// that only need the container operations can depend on this interface
// instead of the concrete type.
type Map interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any existing row.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key, failing with ErrNotFound when it is absent.
	Delete(ctx context.Context, key string) error
	// Has reports whether key is present.
	Has(ctx context.Context, key string) (bool, error)
	// Len returns the number of stored rows.
	Len(ctx context.Context) (int, error)
	// Keys returns every key in ascending lexical order.
	Keys(ctx context.Context) ([]string, error)
	// Sync commits pending work unconditionally.
	Sync(ctx context.Context) error
	// Close releases the shelf. Idempotent.
	Close() error
}

var _ Map = (*Shelf)(nil)
