package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stokku/grocery-inventory/internal/inventory/domain"
)

// ErrCacheMiss signals the caller should fall through to the store.
var ErrCacheMiss = errors.New("list cache miss")

// Collection tags. Entries live under a generation-suffixed key; every
// mutation bumps the generation, so a fill computed against a pre-mutation
// store snapshot lands under a dead key and can never be served. That is
// what keeps a cached low-stock list from drifting against concurrent
// quantity or threshold edits.
const (
	AllItemsKey = "inventory:items:all"
	LowStockKey = "inventory:items:low-stock"

	generationKey = "inventory:items:gen"
)

// DefaultListCacheTTL is a backstop for abandoned generations; correctness
// comes from the generation bump, not from expiry.
const DefaultListCacheTTL = 10 * time.Minute

// ListCache caches whole collection query results keyed by a collection tag.
// GetItems reports the generation it read so a subsequent SetItems can be
// pinned to it; fills against a bumped generation are silently dead.
type ListCache interface {
	GetItems(ctx context.Context, key string) ([]domain.InventoryItem, int64, error)
	SetItems(ctx context.Context, key string, generation int64, items []domain.InventoryItem) error
	Invalidate(ctx context.Context) error
}

type redisListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisListCache(client *redis.Client, ttl time.Duration) ListCache {
	if ttl <= 0 {
		ttl = DefaultListCacheTTL
	}
	return &redisListCache{client: client, ttl: ttl}
}

func generationTaggedKey(key string, generation int64) string {
	return fmt.Sprintf("%s:%d", key, generation)
}

func (c *redisListCache) GetItems(ctx context.Context, key string) ([]domain.InventoryItem, int64, error) {
	// The generation must be read before the payload (and before any store
	// query the caller falls through to): a mutation in between bumps it and
	// orphans whatever the caller fills afterwards.
	generation, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return nil, 0, err
		}
		generation = 0
	}

	payload, err := c.client.Get(ctx, generationTaggedKey(key, generation)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, generation, ErrCacheMiss
		}
		return nil, generation, err
	}
	var items []domain.InventoryItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, generation, err
	}
	return items, generation, nil
}

func (c *redisListCache) SetItems(ctx context.Context, key string, generation int64, items []domain.InventoryItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, generationTaggedKey(key, generation), payload, c.ttl).Err()
}

func (c *redisListCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}
