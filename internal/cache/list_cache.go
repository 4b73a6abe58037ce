package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const listVersionKey = "tickets:list:version"

// ListCache is a read-through cache for ticket listing responses, keyed by
// the full request signature (filters, sort, page, page size). Mutations
// invalidate every cached page at once by bumping a version counter, so no
// stale listing outlives a write. Redis being down never fails a request;
// callers just fall through to the store.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewListCache builds the cache. A nil client disables caching.
func NewListCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ListCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ListCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached payload for a request signature, if present.
func (c *ListCache) Get(ctx context.Context, signature string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	key, err := c.key(ctx, signature)
	if err != nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("list cache read failed", zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

// Set stores the payload for a request signature.
func (c *ListCache) Set(ctx context.Context, signature string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	key, err := c.key(ctx, signature)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("list cache write failed", zap.Error(err))
	}
}

// Invalidate drops all cached listings by moving to a new key version.
func (c *ListCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, listVersionKey).Err(); err != nil {
		c.logger.Warn("list cache invalidation failed", zap.Error(err))
	}
}

func (c *ListCache) key(ctx context.Context, signature string) (string, error) {
	version, err := c.client.Get(ctx, listVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("tickets:list:v%d:%s", version, signature), nil
}
