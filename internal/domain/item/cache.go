package item

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	approvedCacheKeyPrefix = "items:approved:"
	approvedCacheTTL       = 60 * time.Second
)

// Cache caches approved-item listings per campus. A nil Redis client turns
// every lookup into a miss, so the app keeps working without Redis.
type Cache struct {
	redis *redis.Client
}

func NewCache(redisClient *redis.Client) *Cache {
	return &Cache{redis: redisClient}
}

// GetApproved returns the cached approved listing for a campus, if present.
// Only the first page (offset 0, default limit) is cached.
func (c *Cache) GetApproved(ctx context.Context, campus string) ([]*Item, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, approvedCacheKeyPrefix+campus).Bytes()
	if err != nil {
		return nil, false
	}

	var items []*Item
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn().Err(err).Str("campus", campus).Msg("corrupt approved-items cache entry, dropping")
		c.redis.Del(ctx, approvedCacheKeyPrefix+campus)
		return nil, false
	}
	return items, true
}

// SetApproved stores the approved listing for a campus.
func (c *Cache) SetApproved(ctx context.Context, campus string, items []*Item) {
	if c == nil || c.redis == nil {
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		return
	}

	if err := c.redis.Set(ctx, approvedCacheKeyPrefix+campus, data, approvedCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("campus", campus).Msg("failed to write approved-items cache")
	}
}

// Invalidate drops the cached listing for a campus. Called after any
// moderation decision that changes what the campus sees.
func (c *Cache) Invalidate(ctx context.Context, campus string) {
	if c == nil || c.redis == nil {
		return
	}

	if err := c.redis.Del(ctx, approvedCacheKeyPrefix+campus).Err(); err != nil {
		log.Warn().Err(err).Str("campus", campus).Msg("failed to invalidate approved-items cache")
	}
}
