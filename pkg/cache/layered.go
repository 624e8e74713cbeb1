package cache

import (
	"context"
	"time"
)

// LayeredCache implements a two-level Store (L1: Memory, L2: Redis).
type LayeredCache struct {
	memCache   *MemoryCache
	redisCache *RedisCache
}

// NewLayeredCache creates a layered cache with memory and Redis.
func NewLayeredCache(redisCache *RedisCache, opts ...MemoryOption) *LayeredCache {
	return &LayeredCache{
		memCache:   NewMemoryCache(opts...),
		redisCache: redisCache,
	}
}

func (lc *LayeredCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Write-through: Redis first, then memory
	if err := lc.redisCache.SetBytes(ctx, key, value, ttl); err != nil {
		return err
	}
	_ = lc.memCache.SetBytes(ctx, key, value, ttl)
	return nil
}

func (lc *LayeredCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	if b, ok, err := lc.memCache.GetBytes(ctx, key); err == nil && ok {
		return b, true, nil
	}

	b, ok, err := lc.redisCache.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	// Populate L1 for next time
	_ = lc.memCache.SetBytes(ctx, key, b, 0)
	return b, true, nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.memCache.Delete(ctx, keys...)
	return lc.redisCache.Delete(ctx, keys...)
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.memCache.Close()
	return lc.redisCache.Close()
}
