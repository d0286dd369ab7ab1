package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodcourt/storefront-svc/internal/assistant"
	"foodcourt/storefront-svc/internal/domain"
)

func setupTestCache(t *testing.T) (*CatalogCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCatalogCache(client, time.Minute), mr
}

func TestCatalogCache_RoundTrip(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	catalog := &assistant.Catalog{
		Restaurants: []domain.Restaurant{{ID: "r1", Name: "Burger Barn", Cuisine: []string{"American"}}},
		Items:       []domain.MenuItem{{ID: "b1", RestaurantID: "r1", Name: "Cheese Burger", Price: 150, IsBestseller: true}},
	}
	require.NoError(t, cache.Set(ctx, catalog))
	assert.Equal(t, time.Minute, mr.TTL(catalogKey))

	got, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Cheese Burger", got.Items[0].Name)
	assert.Equal(t, "Burger Barn", got.RestaurantName("r1"))

	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists(catalogKey))
}

func TestCatalogCache_CorruptValue(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set(catalogKey, "{not json"))

	_, ok, err := cache.Get(context.Background())

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCatalogCache_Expires(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, &assistant.Catalog{}))

	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
