package shelf

import (
	"context"
	"fmt"

	"github.com/interfect/sqliteshelf/shelf/codec"
)

// TypedShelf wraps a Shelf so values of type V round-trip through a
// codec instead of raw byte slices. Error and durability semantics are
// inherited unchanged from the underlying shelf; ErrNotFound surfaces
// before any decoding is attempted.
type TypedShelf[V any] struct {
	shelf *Shelf
	codec codec.Codec
}

// NewTyped wraps sh with the given codec. A nil codec selects msgpack.
func NewTyped[V any](sh *Shelf, c codec.Codec) *TypedShelf[V] {
	if c == nil {
		c = codec.Msgpack()
	}
	return &TypedShelf[V]{shelf: sh, codec: c}
}

// Get returns the decoded value stored under key. Stored bytes that the
// codec cannot reconstitute fail with an error wrapping ErrDecode.
func (t *TypedShelf[V]) Get(ctx context.Context, key string) (V, error) {
	var v V
	raw, err := t.shelf.Get(ctx, key)
	if err != nil {
		return v, err
	}
	if err := t.codec.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: key %q: %w", ErrDecode, key, err)
	}
	return v, nil
}

// Set encodes v and stores it under key.
func (t *TypedShelf[V]) Set(ctx context.Context, key string, v V) error {
	raw, err := t.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}
	return t.shelf.Set(ctx, key, raw)
}

// Delete removes the row stored under key.
func (t *TypedShelf[V]) Delete(ctx context.Context, key string) error {
	return t.shelf.Delete(ctx, key)
}

// Has reports whether key is present.
func (t *TypedShelf[V]) Has(ctx context.Context, key string) (bool, error) {
	return t.shelf.Has(ctx, key)
}

// Len returns the number of rows in the shelf.
func (t *TypedShelf[V]) Len(ctx context.Context) (int, error) {
	return t.shelf.Len(ctx)
}

// Keys returns every key in ascending lexical order.
func (t *TypedShelf[V]) Keys(ctx context.Context) ([]string, error) {
	return t.shelf.Keys(ctx)
}

// Sync commits pending work unconditionally.
func (t *TypedShelf[V]) Sync(ctx context.Context) error {
	return t.shelf.Sync(ctx)
}

// Close closes the underlying shelf. Idempotent.
func (t *TypedShelf[V]) Close() error {
	return t.shelf.Close()
}

// Raw exposes the underlying shelf, e.g. to inspect stored bytes.
func (t *TypedShelf[V]) Raw() *Shelf {
	return t.shelf
}
