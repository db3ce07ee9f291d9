package catalog

import (
	"context"
	"time"

	"Storefront/internal/kv"
)

const (
	// CacheTTL bounds how long a catalog snapshot may be served without
	// hitting the upstream API again.
	CacheTTL = time.Hour

	cacheKey = "cachedProducts"
)

// CacheEntry is the persisted catalog snapshot. FetchedAt is epoch
// milliseconds so the blob stays readable with a plain redis-cli GET.
type CacheEntry struct {
	FetchedAt int64     `json:"timestamp"`
	Products  []Product `json:"products"`
}

// Cache stores the catalog snapshot through the shared KV adapter.
type Cache struct {
	KV kv.Store
}

// Get returns the cached products when the entry is younger than CacheTTL.
// A stale entry is deleted on sight so a later failed refresh cannot revive
// it by accident.
func (c *Cache) Get(ctx context.Context, now time.Time) ([]Product, bool) {
	var entry CacheEntry
	if !c.KV.Read(ctx, cacheKey, &entry) {
		return nil, false
	}

	age := now.UnixMilli() - entry.FetchedAt
	if age >= CacheTTL.Milliseconds() {
		_ = c.KV.Delete(ctx, cacheKey)
		return nil, false
	}

	return entry.Products, true
}

func (c *Cache) Put(ctx context.Context, products []Product, now time.Time) error {
	return c.KV.Write(ctx, cacheKey, CacheEntry{
		FetchedAt: now.UnixMilli(),
		Products:  products,
	})
}
