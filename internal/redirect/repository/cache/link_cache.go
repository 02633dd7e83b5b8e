package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"knowledgelib/internal/redirect/domain"
)

const linkCachePrefix = "link:"

// LinkCache caches resolved affiliate links in front of the link store.
// Implementations must treat their own failures as cache misses.
type LinkCache interface {
	// Get retrieves a link by slug. Returns nil, nil on a cache miss.
	Get(ctx context.Context, slug string) (*domain.AffiliateLink, error)

	// Set stores a resolved link under its slug.
	Set(ctx context.Context, slug string, link *domain.AffiliateLink) error
}

var (
	_ LinkCache = (*RedisLinkCache)(nil)
	_ LinkCache = (*noopLinkCache)(nil)
)

// RedisLinkCache implements LinkCache on Redis with a short TTL. Staleness is
// bounded by the TTL; the link store stays the system of record.
type RedisLinkCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisLinkCache creates a Redis-backed link cache. A nil client yields a
// no-op cache so the service runs without Redis in local setups.
func NewRedisLinkCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) LinkCache {
	if rdb == nil {
		return &noopLinkCache{}
	}
	return &RedisLinkCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get retrieves a link from Redis. Any Redis error is logged and reported as
// a miss so the resolver falls through to the store.
func (c *RedisLinkCache) Get(ctx context.Context, slug string) (*domain.AffiliateLink, error) {
	data, err := c.rdb.Get(ctx, linkCachePrefix+slug).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("link cache read failed", zap.String("slug", slug), zap.Error(err))
		}
		return nil, nil
	}

	var link domain.AffiliateLink
	if err := json.Unmarshal(data, &link); err != nil {
		c.logger.Warn("link cache entry corrupt", zap.String("slug", slug), zap.Error(err))
		return nil, nil
	}
	return &link, nil
}

// Set stores a link in Redis. Failures are logged and dropped.
func (c *RedisLinkCache) Set(ctx context.Context, slug string, link *domain.AffiliateLink) error {
	data, err := json.Marshal(link)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, linkCachePrefix+slug, data, c.ttl).Err(); err != nil {
		c.logger.Warn("link cache write failed", zap.String("slug", slug), zap.Error(err))
	}
	return nil
}

type noopLinkCache struct{}

func (noopLinkCache) Get(context.Context, string) (*domain.AffiliateLink, error) { return nil, nil }

func (noopLinkCache) Set(context.Context, string, *domain.AffiliateLink) error { return nil }
