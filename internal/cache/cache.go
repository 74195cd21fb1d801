// Package cache holds the shared list cache for collection endpoints.
// Mutations never touch cached data directly; they invalidate the affected
// collections and the next read repopulates from the store. Invalidation is
// an explicit, per-collection call so every mutation site states exactly
// which views it dirties.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vekodev/catalog-admin-golang/internal/pkg/logger"
)

// Collection keys. Scoped variants (brand-/category-filtered views) live under
// "<collection>:" prefixes and are wiped together with the base key.
const (
	CollectionBrands          = "brands"
	CollectionCategories      = "categories"
	CollectionChildCategories = "childcategories"
	CollectionProducts        = "products"
	CollectionNews            = "news"
)

type Store interface {
	// GetList unmarshals a cached collection into dest. The bool reports a hit.
	GetList(ctx context.Context, collection string, dest interface{}) (bool, error)
	SetList(ctx context.Context, collection string, v interface{})
	Invalidate(ctx context.Context, collections ...string)
}

// Redis backs the cache with a shared redis instance.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewRedis(addr, password string, log *logger.Logger) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &Redis{rdb: rdb, ttl: 10 * time.Minute, log: log}
}

// Ping verifies the connection at startup.
func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func key(collection string) string { return "catalog:" + collection }

func (c *Redis) GetList(ctx context.Context, collection string, dest interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, key(collection)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Redis) SetList(ctx context.Context, collection string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache marshal failed", "collection", collection, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key(collection), data, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "collection", collection, "error", err)
	}
}

func (c *Redis) Invalidate(ctx context.Context, collections ...string) {
	for _, collection := range collections {
		keys, err := c.rdb.Keys(ctx, key(collection)+"*").Result()
		if err != nil {
			c.log.Warn("cache invalidate scan failed", "collection", collection, "error", err)
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			c.log.Warn("cache invalidate failed", "collection", collection, "error", err)
		}
	}
}

// Noop satisfies Store when no redis is configured (and in tests).
type Noop struct{}

func (Noop) GetList(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) SetList(context.Context, string, interface{})               {}
func (Noop) Invalidate(context.Context, ...string)                      {}
