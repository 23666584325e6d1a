// internal/inventory/cache.go
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-ranker/internal/common/logger"
)

const cacheKeyPrefix = "inventory:catalog:"

// CachedStore keeps the inner store's catalog in redis for ttl. Redis
// failures fall through to the inner store.
type CachedStore struct {
	inner  Store
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(inner Store, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"store": "cache", "inner": inner.Name()}),
	}
}

func (s *CachedStore) Name() string { return s.inner.Name() }

// CacheKey is the redis key holding the inner store's catalog.
func (s *CachedStore) CacheKey() string {
	return cacheKeyPrefix + s.inner.Name()
}

func (s *CachedStore) Load(ctx context.Context) (*Catalog, error) {
	key := s.CacheKey()

	val, err := s.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var cat Catalog
		if err := json.Unmarshal([]byte(val), &cat); err == nil {
			return &cat, nil
		}
		s.logger.Warn("discarding undecodable cached catalog", map[string]interface{}{"key": key})
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("catalog cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	cat, err := s.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(cat)
	if err != nil {
		return cat, nil
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("catalog cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return cat, nil
}

// Invalidate drops the cached catalog so the next Load hits the inner store.
func (s *CachedStore) Invalidate(ctx context.Context) error {
	return s.redis.Del(ctx, s.CacheKey()).Err()
}
