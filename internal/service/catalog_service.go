package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront-service/internal/listing"
	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

const productsCacheKey = "products"

// CatalogService serves catalog reads. The product listing is cached in Redis
// because it is the hot path and the underlying data never changes between
// deploys; cache trouble degrades to the store, it is never user-visible.
type CatalogService struct {
	catalog  store.Catalog
	redis    *redisclient.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCatalogService creates a catalog service. redis may be nil, in which
// case caching is disabled.
func NewCatalogService(catalog store.Catalog, redis *redisclient.Client, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		catalog:  catalog,
		redis:    redis,
		cacheTTL: cacheTTL,
		logger:   util.GetLogger(),
	}
}

// ListProducts returns the full catalog sorted by release date descending,
// the order the listing page expects from the server.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	if s.redis != nil {
		raw, ok, err := s.redis.GetCache(ctx, productsCacheKey)
		if err != nil {
			s.logger.Warn("Catalog cache read failed", zap.Error(err))
		} else if ok {
			var products []models.Product
			uerr := json.Unmarshal(raw, &products)
			if uerr == nil {
				util.CatalogCacheHitsTotal.Inc()
				return products, nil
			}
			s.logger.Warn("Catalog cache entry is malformed, refreshing", zap.Error(uerr))
		}
		util.CatalogCacheMissesTotal.Inc()
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	listing.Sort(products, listing.SortReleaseDateDesc)

	if s.redis != nil {
		raw, err := json.Marshal(products)
		if err == nil {
			if err := s.redis.SetCache(ctx, productsCacheKey, raw, s.cacheTTL); err != nil {
				s.logger.Warn("Catalog cache write failed", zap.Error(err))
			}
		}
	}

	return products, nil
}

// GetProduct returns a single product. A missing product surfaces
// store.ErrNotFound.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetProduct")
	defer span.End()

	product, err := s.catalog.ProductByID(ctx, id)
	if err != nil {
		reason := "error"
		if errors.Is(err, store.ErrNotFound) {
			reason = "not_found"
		}
		util.ProductLookupsFailed.WithLabelValues(reason).Inc()
		return nil, err
	}
	return product, nil
}

// InvalidateListing drops the cached product listing. The server calls it on
// startup so a restart with changed catalog data never serves the previous
// deploy's listing for a full TTL.
func (s *CatalogService) InvalidateListing(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.InvalidateCache(ctx, productsCacheKey)
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.catalog.Categories(ctx)
}

// ListBrands returns all brands.
func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.catalog.Brands(ctx)
}

// ListOptions returns all option descriptors.
func (s *CatalogService) ListOptions(ctx context.Context) ([]models.OptionDescriptor, error) {
	return s.catalog.Options(ctx)
}
