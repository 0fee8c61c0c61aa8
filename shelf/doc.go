// Package shelf provides persistent, ordered key-value maps backed by an
// embedded SQLite database.
//
// A Shelf is one named table inside a backing file. Several shelves may
// live in the same file; a Registry hands every shelf opened against the
// same path one shared physical connection and reference-counts it, so
// the connection is closed only when the last shelf using it closes.
//
// # Quick start
//
//	reg := shelf.NewRegistry()
//	defer reg.Close()
//
//	sh, err := reg.Open(ctx, shelf.Options{Path: "app.db"})
//	if err != nil {
//		return err
//	}
//	defer sh.Close()
//
//	if err := sh.Set(ctx, "greeting", []byte("moo")); err != nil {
//		return err
//	}
//
// # Durability
//
// Eager shelves (the default) commit after every mutation. Lazy shelves
// leave mutations in the connection's pending transaction until Sync or
// Close. Both modes read their own writes immediately; only the moment
// work becomes durable on disk differs.
//
// Durability is a property of the file-level connection, not of an
// individual shelf: a commit triggered through any shelf (an eager
// mutation, or Sync on a lazy shelf) commits the pending work of every
// shelf sharing that backing file. This is intentional — it lets batches
// spanning several lazy shelves become durable together.
//
// # Concurrency
//
// The package performs no internal locking around statement execution.
// At most one logical transaction may be in flight against a backing
// file at any instant; callers using a shelf (or several shelves on one
// file) from multiple goroutines must serialize access themselves.
//
// # Typed values
//
// TypedShelf layers a codec (JSON, gob or msgpack, see the codec
// subpackage) over a Shelf so structured values round-trip without the
// caller touching byte slices.
package shelf
