package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdbrink/proximascore/internal/service"
)

func newTestStore(t *testing.T, ttl time.Duration) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:", ttl)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_GetMissingKey(t *testing.T) {
	store := newTestStore(t, time.Hour)

	val, ok, err := store.Get(context.Background(), service.TableGeocode, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestSQLiteStore_PutGetRoundTrip(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	payload := []byte(`{"lat":51.9225,"lng":4.47917}`)
	require.NoError(t, store.Put(ctx, service.TableGeocode, "abc123", payload))

	val, ok, err := store.Get(ctx, service.TableGeocode, "abc123")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload, val)
}

func TestSQLiteStore_TablesAreIndependent(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, service.TableGeocode, "shared-key", []byte("geo")))

	_, ok, err := store.Get(ctx, service.TablePOI, "shared-key")
	require.NoError(t, err)
	assert.False(t, ok, "poi table must not see geocode entries")
}

func TestSQLiteStore_UpsertOverwrites(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, service.TablePOI, "k", []byte("old")))
	require.NoError(t, store.Put(ctx, service.TablePOI, "k", []byte("new")))

	val, ok, err := store.Get(ctx, service.TablePOI, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("new"), val)
}

func TestSQLiteStore_ExpiredEntryIsAMiss(t *testing.T) {
	// Nanosecond TTL: everything written is already stale on read.
	store := newTestStore(t, time.Nanosecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, service.TableGeocode, "stale", []byte("v")))
	time.Sleep(time.Millisecond)

	val, ok, err := store.Get(ctx, service.TableGeocode, "stale")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestSQLiteStore_PutResetsTheClock(t *testing.T) {
	store := newTestStore(t, 100*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, service.TableGeocode, "k", []byte("v1")))
	time.Sleep(120 * time.Millisecond)

	_, ok, err := store.Get(ctx, service.TableGeocode, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Put(ctx, service.TableGeocode, "k", []byte("v2")))

	val, ok, err := store.Get(ctx, service.TableGeocode, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), val)
}

func TestSQLiteStore_RejectsUnknownTable(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	err := store.Put(ctx, "score_cache", "k", []byte("v"))
	assert.ErrorIs(t, err, ErrUnknownTable)

	_, _, err = store.Get(ctx, "users; DROP TABLE poi_cache", "k")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestSQLiteStore_PruneExpired(t *testing.T) {
	store := newTestStore(t, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, service.TableGeocode, "a", []byte("v")))
	require.NoError(t, store.Put(ctx, service.TablePOI, "b", []byte("v")))
	time.Sleep(70 * time.Millisecond)

	n, err := store.PruneExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
