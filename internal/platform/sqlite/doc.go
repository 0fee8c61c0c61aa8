// Package sqlite opens and configures the physical SQLite connections
// used by the shelf package.
//
// Every handle opened here is pinned to exactly one underlying
// connection (pool size 1). The shelf registry shares a handle between
// all logical maps opened against the same backing file, and the pending
// transaction on that connection is the unit of durability, so a second
// pooled connection would silently split that transaction.
//
// # Usage
//
//	ctx := context.Background()
//	db, err := sqlite.Open(ctx, "app.db", sqlite.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
// In-memory databases (for tests, or as the private non-shared backing
// store) are opened with OpenInMemory; each call yields an independent
// database.
package sqlite
