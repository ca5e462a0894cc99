package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/port"
	"golang.org/x/text/currency"
)

const productColumns = `id, category_id, name, slug, description, weight, price_amount, price_currency, created_at`

type catalogRepository struct {
	db DB
}

func NewCatalog(pool *pgxpool.Pool) port.CatalogRepository {
	return &catalogRepository{db: pool}
}

func NewCatalogWithTx(tx pgx.Tx) port.CatalogRepository {
	return &catalogRepository{db: tx}
}

func (r *catalogRepository) GetProduct(ctx context.Context, slug string) (domain.Product, error) {
	var p domain.Product

	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("product[%s]: %w", slug, ErrNotFound)
		}
		return p, fmt.Errorf("scanProduct: %w", err)
	}

	return p, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *catalogRepository) ListByCategory(ctx context.Context, categorySlug string) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.category_id, p.name, p.slug, p.description, p.weight, p.price_amount, p.price_currency, p.created_at
		 FROM products p
		 JOIN categories c ON c.id = p.category_id
		 WHERE c.slug = $1
		 ORDER BY p.id`, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *catalogRepository) GetCategory(ctx context.Context, slug string) (domain.Category, error) {
	var c domain.Category

	err := r.db.QueryRow(ctx,
		`SELECT id, name, slug FROM categories WHERE slug = $1`, slug).
		Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c, fmt.Errorf("category[%s]: %w", slug, ErrNotFound)
		}
		return c, fmt.Errorf("row.Scan: %w", err)
	}

	return c, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, slug FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return categories, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p            domain.Product
		currencyCode string
	)

	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.Weight,
		&p.Price.Amount, &currencyCode, &p.CreatedAt)
	if err != nil {
		return p, err
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return p, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}
	p.Price.Currency = parsedCurrency

	return p, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}
