package port

import (
	"context"

	"github.com/nikolayk812/sweetshop/internal/domain"
)

type CatalogRepository interface {
	GetProduct(ctx context.Context, slug string) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categorySlug string) ([]domain.Product, error)

	GetCategory(ctx context.Context, slug string) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// ProductCache is a read-through cache over the immutable product catalog.
type ProductCache interface {
	Get(ctx context.Context, slug string) (domain.Product, error)
	Set(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, slug string) error
}
