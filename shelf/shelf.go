package shelf

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Shelf is one named table inside a backing database, behaving as a
// persistent string-keyed map of opaque byte values. It does not own its
// connection exclusively: the connection lives until the last shelf
// sharing it closes.
type Shelf struct {
	registry   *Registry
	conn       *conn
	table      string
	durability Durability
	closed     bool
}

// Open opens (creating if necessary) the shelf described by opts. The
// table and its unique key index are created idempotently, so concurrent
// opens of the same table within the process are harmless. Callers must
// pair every Open with a Close, normally via defer.
func (r *Registry) Open(ctx context.Context, opts Options) (*Shelf, error) {
	opts = opts.withDefaults()
	if !tablePattern.MatchString(opts.Table) {
		return nil, fmt.Errorf("invalid table name %q", opts.Table)
	}

	c, err := r.acquire(ctx, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open backing database %q: %w", opts.Path, err)
	}

	s := &Shelf{
		registry:   r,
		conn:       c,
		table:      opts.Table,
		durability: opts.Durability,
	}
	if err := s.ensureSchema(ctx); err != nil {
		_ = r.release(c)
		return nil, err
	}
	return s, nil
}

// ensureSchema creates the table and its unique key index if absent,
// then runs the regular commit policy. Under Eager the schema is durable
// even if the process exits before the first mutation.
func (s *Shelf) ensureSchema(ctx context.Context) error {
	q, err := s.conn.writer(ctx)
	if err != nil {
		return err
	}

	stmts := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (key TEXT, value TEXT)", s.table),
		fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s_keyndx ON %s (key)", s.table, s.table),
	}
	for _, stmt := range stmts {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema for table %q: %w", s.table, err)
		}
	}
	return s.maybeCommit()
}

// maybeCommit applies the durability policy after a mutation.
func (s *Shelf) maybeCommit() error {
	if s.durability == Eager {
		return s.conn.commit()
	}
	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (s *Shelf) Get(ctx context.Context, key string) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}

	var value []byte
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = ?", s.table)
	err := s.conn.reader().QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any existing row.
func (s *Shelf) Set(ctx context.Context, key string, value []byte) error {
	if s.closed {
		return ErrClosed
	}

	q, err := s.conn.writer(ctx)
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf("REPLACE INTO %s (key, value) VALUES (?, ?)", s.table)
	if _, err := q.ExecContext(ctx, stmt, key, value); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return s.maybeCommit()
}

// Delete removes the row stored under key. The absence check is a
// distinct lookup, so a missing key fails with ErrNotFound before any
// delete statement is issued.
func (s *Shelf) Delete(ctx context.Context, key string) error {
	if s.closed {
		return ErrClosed
	}

	ok, err := s.Has(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}

	q, err := s.conn.writer(ctx)
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf("DELETE FROM %s WHERE key = ?", s.table)
	if _, err := q.ExecContext(ctx, stmt, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return s.maybeCommit()
}

// Has reports whether key is present, i.e. whether Get would succeed.
func (s *Shelf) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

// Len returns the number of rows in the shelf.
func (s *Shelf) Len(ctx context.Context) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)
	if err := s.conn.reader().QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

// Keys returns every key in ascending lexical order, fully materialized.
// Each call re-reads current state; it is not a live cursor.
func (s *Shelf) Keys(ctx context.Context) ([]string, error) {
	if s.closed {
		return nil, ErrClosed
	}

	query := fmt.Sprintf("SELECT key FROM %s ORDER BY key", s.table)
	rows, err := s.conn.reader().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Sync commits pending work unconditionally, regardless of durability
// mode. Because the connection is shared per backing file, this also
// commits uncommitted work of sibling shelves on the same file.
func (s *Shelf) Sync(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	return s.conn.commit()
}

// Close commits pending work and releases this shelf's reference to the
// shared connection. Closing an already-closed shelf is a no-op, so
// teardown paths may call it after an explicit Close already ran.
func (s *Shelf) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	commitErr := s.conn.commit()
	if err := s.registry.release(s.conn); err != nil {
		return err
	}
	return commitErr
}
