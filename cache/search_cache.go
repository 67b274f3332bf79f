// Package cache holds the redis-backed cache for item search results.
// Entries are JSON payloads with a TTL; a generation counter bumped on
// every item write keys them, so stale results are never served after a
// mutation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shareit/models"

	"github.com/redis/go-redis/v9"
)

const genKey = "items:search:gen"

type SearchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSearchCache(rdb *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{rdb: rdb, ttl: ttl}
}

func searchKey(gen int64, text string) string {
	return fmt.Sprintf("items:search:%d:%s", gen, text)
}

// Generation returns the current cache generation. Callers observe it once
// and pass it to both Get and Set; an item write that lands in between
// bumps the counter, so the write under the old generation is never read.
func (c *SearchCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the result set cached under gen for text, with ok=false on
// miss.
func (c *SearchCache) Get(ctx context.Context, gen int64, text string) ([]models.Item, bool, error) {
	b, err := c.rdb.Get(ctx, searchKey(gen, text)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []models.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *SearchCache) Set(ctx context.Context, gen int64, text string, items []models.Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, searchKey(gen, text), b, c.ttl).Err()
}

// Invalidate retires every cached result set by moving to a new generation.
// Old keys fall out on their own TTL.
func (c *SearchCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, genKey).Err()
}
