package shelf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireSharesConnectionPerPath(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)
	path := testDBPath(t)

	a, err := reg.acquire(ctx, path)
	require.NoError(t, err)
	b, err := reg.acquire(ctx, path)
	require.NoError(t, err)

	assert.Same(t, a, b)

	require.NoError(t, reg.release(a))
	require.NoError(t, reg.release(b))
}

func TestAcquireAfterFullReleaseStartsFresh(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)
	path := testDBPath(t)

	a, err := reg.acquire(ctx, path)
	require.NoError(t, err)
	require.NoError(t, reg.release(a))

	b, err := reg.acquire(ctx, path)
	require.NoError(t, err)
	defer func() { require.NoError(t, reg.release(b)) }()

	assert.NotSame(t, a, b)
}

func TestInMemoryAcquiresAreIndependent(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)

	a := openTestShelf(t, reg, Options{})
	b := openTestShelf(t, reg, Options{})

	require.NoError(t, a.Set(ctx, "k", []byte("only-in-a")))

	ok, err := b.Has(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReleaseWithoutAcquire(t *testing.T) {
	reg := newTestRegistry(t)

	err := reg.release(&conn{identity: "/never/acquired.db"})
	assert.ErrorIs(t, err, ErrReleaseWithoutAcquire)
}

func TestReleaseOfForeignConnection(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)
	other := newTestRegistry(t)
	path := testDBPath(t)

	c, err := reg.acquire(ctx, path)
	require.NoError(t, err)
	defer func() { require.NoError(t, reg.release(c)) }()

	// The other registry never handed this connection out.
	err = other.release(c)
	assert.ErrorIs(t, err, ErrReleaseWithoutAcquire)
}

// Closing one shelf twice must not double-release the shared connection:
// a sibling shelf on the same file stays fully usable.
func TestDoubleCloseDoesNotDoubleRelease(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)
	path := testDBPath(t)

	a := openTestShelf(t, reg, Options{Path: path, Table: "first"})
	b := openTestShelf(t, reg, Options{Path: path, Table: "second"})

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	require.NoError(t, b.Set(ctx, "k", []byte("still alive")))
	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("still alive"), got)

	keys, err := b.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

func TestConnectionSurvivesUntilLastRelease(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)
	path := testDBPath(t)

	a := openTestShelf(t, reg, Options{Path: path, Table: "first"})
	b := openTestShelf(t, reg, Options{Path: path, Table: "second"})
	c := openTestShelf(t, reg, Options{Path: path, Table: "third"})

	require.NoError(t, a.Close())
	require.NoError(t, b.Close())

	// Last reference still holds a live connection.
	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	require.NoError(t, c.Close())

	// All references gone: the registry entry must be removed.
	reg.mu.Lock()
	_, exists := reg.handles[path]
	reg.mu.Unlock()
	assert.False(t, exists)
}

// Registry.Close is the backstop for shelves that were abandoned rather
// than closed: pending work is committed before the connection goes away.
func TestRegistryCloseCommitsAbandonedShelves(t *testing.T) {
	ctx := context.Background()
	path := testDBPath(t)

	reg := NewRegistry()
	sh, err := reg.Open(ctx, Options{Path: path, Durability: Lazy})
	require.NoError(t, err)
	require.NoError(t, sh.Set(ctx, "k", []byte("abandoned")))

	// Shelf never closed; registry teardown must still commit and close.
	require.NoError(t, reg.Close())

	sh2 := openTestShelf(t, newTestRegistry(t), Options{Path: path})
	got, err := sh2.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abandoned"), got)
}

func TestRegistryCloseIsIdempotent(t *testing.T) {
	reg := NewRegistry()

	sh, err := reg.Open(context.Background(), Options{Path: testDBPath(t)})
	require.NoError(t, err)
	require.NoError(t, sh.Close())

	require.NoError(t, reg.Close())
	require.NoError(t, reg.Close())
}
