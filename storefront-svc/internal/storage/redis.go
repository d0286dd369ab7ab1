package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"foodcourt/storefront-svc/internal/assistant"
)

const catalogKey = "catalog:snapshot"

// CatalogCache keeps the catalog snapshot as one JSON value.
type CatalogCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{Client: client, TTL: ttl}
}

func (c *CatalogCache) Get(ctx context.Context) (*assistant.Catalog, bool, error) {
	raw, err := c.Client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var catalog assistant.Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, false, err
	}
	return &catalog, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, catalog *assistant.Catalog) error {
	payload, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, catalogKey, payload, c.TTL).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.Client.Del(ctx, catalogKey).Err()
}
