package session_test

import (
	"context"
	"database/sql"
	"testing"

	session "github.com/shigde/go-session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newBunStorage(t *testing.T) *session.BunStorage {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	storage := session.NewBunStorage(db)
	require.NoError(t, storage.Init(context.Background()))
	return storage
}

func TestBunStorageRoundTrip(t *testing.T) {
	storage := newBunStorage(t)
	ctx := context.Background()

	_, err := storage.Read(ctx, "session")
	assert.ErrorIs(t, err, session.ErrKeyNotFound)

	require.NoError(t, storage.Write(ctx, "session", []byte("alice")))

	value, err := storage.Read(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), value)

	// Upsert replaces the previous record.
	require.NoError(t, storage.Write(ctx, "session", []byte("bob")))
	value, err = storage.Read(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []byte("bob"), value)

	require.NoError(t, storage.Delete(ctx, "session"))
	_, err = storage.Read(ctx, "session")
	assert.ErrorIs(t, err, session.ErrKeyNotFound)
}

func TestBunStorageInitIsIdempotent(t *testing.T) {
	storage := newBunStorage(t)
	require.NoError(t, storage.Init(context.Background()))
}

func TestCredentialStoreOverBun(t *testing.T) {
	storage := newBunStorage(t)

	store := session.NewCredentialStore(storage, session.WithStorageKey("viewer"))
	store.Set("bob", "tok-xyz")
	assert.False(t, store.Degraded())

	reloaded := session.NewCredentialStore(storage, session.WithStorageKey("viewer"))
	assert.Equal(t, session.Identity{DisplayName: "bob", Token: "tok-xyz"}, reloaded.Get())
}
