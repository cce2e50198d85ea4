// Package refcache caches slow-changing reference data (search engine
// directories, geo region files) on top of a keyvalue.Store. Entries carry
// their last write time; a read inside the refresh interval returns the
// stored bytes untouched, anything else triggers exactly one fetch.
package refcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"seranking/lib/keyvalue"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/refcache")

type entry struct {
	WrittenAt int64  `json:"written_at"`
	Value     []byte `json:"value"`
}

type Cache struct {
	store keyvalue.Store
	now   func() time.Time
}

func New(store keyvalue.Store) *Cache {
	return &Cache{store: store, now: time.Now}
}

// NewWithClock is New with an injectable clock, for tests.
func NewWithClock(store keyvalue.Store, now func() time.Time) *Cache {
	return &Cache{store: store, now: now}
}

// Get returns the cached value for key if it was written no longer than
// ttl ago. Otherwise it calls fetch, stores the result with a fresh
// timestamp and returns it. Fetch errors propagate unchanged; the stale
// entry is left in place.
func (c *Cache) Get(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetch func(ctx context.Context) ([]byte, error),
) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "cache:get")
	defer span.End()
	span.SetAttributes(attribute.String("cache_key", key))

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read cache entry")
		return nil, fmt.Errorf("cache read %q: %w", key, err)
	}
	if ok {
		var e entry
		err = json.Unmarshal(raw, &e)
		// undecodable entries are treated as stale and refetched
		if err == nil && c.now().Unix()-e.WrittenAt <= int64(ttl/time.Second) {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return e.Value, nil
		}
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	value, err := fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}
	err = c.Put(ctx, key, value)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put overwrites the entry for key unconditionally, stamping it with the
// current time.
func (c *Cache) Put(ctx context.Context, key string, value []byte) error {
	raw, err := json.Marshal(entry{
		WrittenAt: c.now().Unix(),
		Value:     value,
	})
	if err != nil {
		return err
	}
	err = c.store.Set(ctx, key, raw)
	if err != nil {
		return fmt.Errorf("cache write %q: %w", key, err)
	}
	return nil
}
