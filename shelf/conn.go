package shelf

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/interfect/sqliteshelf/internal/platform/sqlite"
)

// conn is one live physical connection to a backing database, together
// with its pending transaction. Mutations run inside the pending
// transaction, begun on demand; commit makes everything applied since
// the previous commit durable at once.
type conn struct {
	identity string
	db       *sql.DB
	tx       *sql.Tx
}

func newConn(ctx context.Context, identity string) (*conn, error) {
	db, err := sqlite.Open(ctx, identity, sqlite.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return &conn{identity: identity, db: db}, nil
}

// reader returns the statement target for reads: the pending transaction
// when one exists, so reads observe uncommitted writes, otherwise the
// bare connection. Plain reads never open a transaction of their own.
func (c *conn) reader() sqlite.Querier {
	if c.tx != nil {
		return c.tx
	}
	return c.db
}

// writer returns the pending transaction, beginning one if needed.
func (c *conn) writer(ctx context.Context) (sqlite.Querier, error) {
	if c.tx == nil {
		tx, err := c.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}
		c.tx = tx
	}
	return c.tx, nil
}

// commit commits the pending transaction. No-op when nothing is pending.
func (c *conn) commit() error {
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// close commits pending work and closes the physical connection.
func (c *conn) close() error {
	commitErr := c.commit()
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return commitErr
}
