package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Store is a byte-oriented cache with per-entry TTL. Scrape clients use it to
// avoid re-fetching upstream pages within a run; values are raw response bodies.
type Store interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Key joins parts into a cache key with ':' separators.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
