// Package cache implements a timestamped read-through cache. An entry is fresh
// while now - entry.Timestamp < ttl; otherwise the fetcher runs and its result
// replaces the entry. Fetch errors propagate and stale data is never served.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// Entry is the stored envelope: the payload and the time it was fetched (unix ms).
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// Store persists raw entries by key. Get returns ok=false when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Cache binds a Store to a clock.
type Cache struct {
	Store Store
	Now   func() time.Time
}

// New returns a Cache using the wall clock.
func New(store Store) *Cache {
	return &Cache{Store: store, Now: time.Now}
}

func (c *Cache) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// LoadWithCache returns the cached value at key when it is younger than ttl,
// and otherwise calls fetch and caches what it returns.
func LoadWithCache[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	now := c.now()

	if v, ok := c.lookup(ctx, key, ttl, now); ok {
		var out T
		if err := json.Unmarshal(v, &out); err == nil {
			return out, nil
		}
		log.Warn().Str("key", key).Msg("cache: undecodable entry, refetching")
	}

	data, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: encode failed")
		return data, nil
	}
	entry, _ := json.Marshal(Entry{Data: payload, Timestamp: now.UnixMilli()})
	if err := c.Store.Set(ctx, key, entry); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: write failed")
	}
	return data, nil
}

func (c *Cache) lookup(ctx context.Context, key string, ttl time.Duration, now time.Time) (json.RawMessage, bool) {
	raw, ok, err := c.Store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false
	}
	if now.UnixMilli()-e.Timestamp >= ttl.Milliseconds() {
		return nil, false
	}
	return e.Data, true
}
