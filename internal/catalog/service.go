package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Service resolves catalog reads through the cache-or-fetch state machine:
// a valid cache entry is served as-is; otherwise one upstream fetch runs and
// either replaces the entry or fails the request. A failed fetch never
// touches the existing cache and is never retried within the request.
type Service struct {
	Upstream *UpstreamClient
	Cache    *Cache
	Log      *zap.Logger

	// now is swappable in tests.
	now func() time.Time
}

func NewService(upstream *UpstreamClient, cache *Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Upstream: upstream,
		Cache:    cache,
		Log:      log,
		now:      time.Now,
	}
}

// Products returns the catalog, optionally filtered by category and capped
// at limit. Filtering and limiting apply to the sequence already in hand;
// they never trigger a second fetch.
func (s *Service) Products(ctx context.Context, category string, limit int) ([]Product, error) {
	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	products = FilterByCategory(products, category)
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products, nil
}

// CategoryList returns the distinct categories of the current catalog in
// order of first appearance.
func (s *Service) CategoryList(ctx context.Context) ([]string, error) {
	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Categories(products), nil
}

// Product fetches one product straight from upstream. Detail lookups are
// deliberately uncached so price and rating are current at view time.
func (s *Service) Product(ctx context.Context, id int64) (Product, error) {
	return s.Upstream.GetProduct(ctx, id)
}

func (s *Service) load(ctx context.Context) ([]Product, error) {
	now := s.now()

	if products, ok := s.Cache.Get(ctx, now); ok {
		return products, nil
	}

	products, err := s.Upstream.ListProducts(ctx)
	if err != nil {
		s.Log.Error("catalog fetch failed", zap.Error(err))
		return nil, err
	}

	if err := s.Cache.Put(ctx, products, now); err != nil {
		// Serve the fresh fetch anyway; the next load will retry the write.
		s.Log.Warn("catalog cache write failed", zap.Error(err))
	}
	return products, nil
}
