package refcache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"seranking/lib/keyvalue"

	"github.com/stretchr/testify/require"
)

func TestFreshEntrySkipsFetch(t *testing.T) {
	now := time.Unix(1700000000, 0)
	cache := NewWithClock(keyvalue.NewMemory(), func() time.Time { return now })
	ctx := context.Background()

	fetches := 0
	fetch := func(ctx context.Context) ([]byte, error) {
		fetches++
		return []byte(fmt.Sprintf("payload %d", fetches)), nil
	}

	value, err := cache.Get(ctx, "engines", time.Hour, fetch)
	require.NoError(t, err)
	require.Equal(t, []byte("payload 1"), value)
	require.Equal(t, 1, fetches)

	// the interval boundary itself still counts as fresh
	now = now.Add(time.Hour)
	value, err = cache.Get(ctx, "engines", time.Hour, fetch)
	require.NoError(t, err)
	require.Equal(t, []byte("payload 1"), value)
	require.Equal(t, 1, fetches)
}

func TestStaleEntryRefetched(t *testing.T) {
	now := time.Unix(1700000000, 0)
	cache := NewWithClock(keyvalue.NewMemory(), func() time.Time { return now })
	ctx := context.Background()

	fetches := 0
	fetch := func(ctx context.Context) ([]byte, error) {
		fetches++
		return []byte(fmt.Sprintf("payload %d", fetches)), nil
	}

	_, err := cache.Get(ctx, "engines", time.Hour, fetch)
	require.NoError(t, err)

	now = now.Add(time.Hour + time.Second)
	value, err := cache.Get(ctx, "engines", time.Hour, fetch)
	require.NoError(t, err)
	require.Equal(t, []byte("payload 2"), value)
	require.Equal(t, 2, fetches)

	// the refetch restarts the interval
	now = now.Add(time.Hour)
	value, err = cache.Get(ctx, "engines", time.Hour, fetch)
	require.NoError(t, err)
	require.Equal(t, []byte("payload 2"), value)
	require.Equal(t, 2, fetches)
}

func TestFetchErrorPropagates(t *testing.T) {
	cache := New(keyvalue.NewMemory())
	boom := fmt.Errorf("remote unavailable")

	_, err := cache.Get(context.Background(), "engines", time.Hour,
		func(ctx context.Context) ([]byte, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
}

func TestPutOverwritesUnconditionally(t *testing.T) {
	store := keyvalue.NewMemory()
	cache := New(store)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "ya.geo", []byte("first")))
	require.NoError(t, cache.Put(ctx, "ya.geo", []byte("second")))

	value, err := cache.Get(ctx, "ya.geo", time.Hour,
		func(ctx context.Context) ([]byte, error) {
			t.Fatal("fetch should not run for a fresh entry")
			return nil, nil
		})
	require.NoError(t, err)
	require.Equal(t, []byte("second"), value)
}
