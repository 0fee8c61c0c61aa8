package shelf

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Registry hands out physical connections to backing files. Every shelf
// opened against the same non-InMemory path receives the same shared
// connection; the registry reference-counts it and closes it when the
// last shelf releases. InMemory opens bypass sharing entirely.
//
// A Registry is an explicit object rather than package state so its
// lifecycle is owned by whoever constructs shelves, and reference
// counting stays testable in isolation.
type Registry struct {
	mu      sync.Mutex
	handles map[string]*sharedHandle
	log     *slog.Logger
}

// sharedHandle pairs a connection with the number of shelves holding it.
type sharedHandle struct {
	conn *conn
	refs int
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for connection lifecycle events.
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty registry. By default it logs nowhere;
// pass WithLogger to observe connection lifecycle events.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		handles: make(map[string]*sharedHandle),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// acquire returns the connection for identity, opening it on first
// reference. Repeated acquires of the same non-InMemory identity return
// the same connection while any reference is outstanding. InMemory
// always yields a fresh, untracked connection.
func (r *Registry) acquire(ctx context.Context, identity string) (*conn, error) {
	if identity == InMemory {
		return newConn(ctx, identity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handles[identity]
	if !ok {
		c, err := newConn(ctx, identity)
		if err != nil {
			return nil, err
		}
		h = &sharedHandle{conn: c}
		r.handles[identity] = h
		r.log.DebugContext(ctx, "opened backing database", slog.String("path", identity))
	}
	h.refs++
	return h.conn, nil
}

// release drops one reference to c. When the count reaches zero the
// pending work is committed, the connection closed and the entry removed
// so a later acquire starts fresh. InMemory connections, never shared,
// are committed and closed immediately.
func (r *Registry) release(c *conn) error {
	if c.identity == InMemory {
		return c.close()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handles[c.identity]
	if !ok || h.conn != c {
		return fmt.Errorf("%w: %q", ErrReleaseWithoutAcquire, c.identity)
	}

	h.refs--
	if h.refs > 0 {
		return nil
	}

	delete(r.handles, c.identity)
	r.log.Debug("closed backing database", slog.String("path", c.identity))
	return h.conn.close()
}

// Close commits and closes every connection still registered. It is a
// backstop for shelves that were never closed; correctly released
// registries have nothing left to do here.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for identity, h := range r.handles {
		if h.refs > 0 {
			r.log.Warn("closing backing database with live references",
				slog.String("path", identity), slog.Int("refs", h.refs))
		}
		if err := h.conn.close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close %q: %w", identity, err)
		}
		delete(r.handles, identity)
	}
	return firstErr
}
