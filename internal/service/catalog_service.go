package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/sweetshop/internal/cache"
	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CatalogService serves catalog reads through a cache. Products are immutable
// from the storefront's perspective, so the cache never needs invalidation on
// the cart path.
type CatalogService struct {
	repo   port.CatalogRepository
	cache  port.ProductCache
	logger *zap.Logger
	sfg    singleflight.Group // prevents cache stampede
}

func NewCatalogService(repo port.CatalogRepository, productCache port.ProductCache, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  productCache,
		logger: logger,
	}
}

func (s *CatalogService) GetProduct(ctx context.Context, slug string) (domain.Product, error) {
	v, err, _ := s.sfg.Do(slug, func() (interface{}, error) {
		product, err := s.cache.Get(ctx, slug)
		if err == nil {
			return product, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("product cache get failed", zap.String("slug", slug), zap.Error(err))
		}

		product, err = s.repo.GetProduct(ctx, slug)
		if err != nil {
			return domain.Product{}, fmt.Errorf("repo.GetProduct: %w", err)
		}

		go func() {
			if err := s.cache.Set(context.Background(), product); err != nil {
				s.logger.Warn("product cache set failed", zap.String("slug", slug), zap.Error(err))
			}
		}()

		return product, nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	return v.(domain.Product), nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListProducts: %w", err)
	}

	return products, nil
}

func (s *CatalogService) ListByCategory(ctx context.Context, categorySlug string) ([]domain.Product, error) {
	products, err := s.repo.ListByCategory(ctx, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("repo.ListByCategory: %w", err)
	}

	return products, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, slug string) (domain.Category, error) {
	category, err := s.repo.GetCategory(ctx, slug)
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.GetCategory: %w", err)
	}

	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListCategories: %w", err)
	}

	return categories, nil
}
