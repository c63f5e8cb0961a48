package cache

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries in process memory. Entries never expire on their
// own; the timestamp check in LoadWithCache decides freshness.
type MemoryStore struct {
	c *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: gocache.New(gocache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.c.Set(key, value, gocache.NoExpiration)
	return nil
}
