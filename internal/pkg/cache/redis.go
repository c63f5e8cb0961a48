package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces cache entries in Redis.
const KeyPrefix = "cache:"

// RedisStore keeps entries in Redis without expiry; freshness is decided by
// the entry timestamp.
type RedisStore struct {
	Rdb *redis.Client
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.Rdb.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.Rdb.Set(ctx, KeyPrefix+key, value, 0).Err()
}
