package repository_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/text/currency"
)

const testCurrency = "EUR"

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := tcpostgres.Run(ctx, "postgres:17-alpine",
		tcpostgres.WithInitScripts(filepath.Join("..", "..", "migrations", "000001_init.up.sql")),
		tcpostgres.WithDatabase("sweetshop"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, "", fmt.Errorf("tcpostgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}

func insertCategory(t *testing.T, pool *pgxpool.Pool) domain.Category {
	t.Helper()
	ctx := t.Context()

	c := domain.Category{
		Name: gofakeit.ProductCategory(),
		Slug: gofakeit.UUID(),
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Slug).Scan(&c.ID)
	require.NoError(t, err)

	return c
}

func insertProduct(t *testing.T, pool *pgxpool.Pool, categoryID int64) domain.Product {
	t.Helper()
	ctx := t.Context()

	p := fakeProduct(categoryID)

	err := pool.QueryRow(ctx,
		`INSERT INTO products (category_id, name, slug, description, weight, price_amount, price_currency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		p.CategoryID, p.Name, p.Slug, p.Description, p.Weight, p.Price.Amount, p.Price.Currency.String()).
		Scan(&p.ID, &p.CreatedAt)
	require.NoError(t, err)

	return p
}

func insertProductPriced(t *testing.T, pool *pgxpool.Pool, categoryID int64, price string) domain.Product {
	t.Helper()

	p := fakeProduct(categoryID)
	p.Price.Amount = decimal.RequireFromString(price)

	err := pool.QueryRow(t.Context(),
		`INSERT INTO products (category_id, name, slug, description, weight, price_amount, price_currency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		p.CategoryID, p.Name, p.Slug, p.Description, p.Weight, p.Price.Amount, p.Price.Currency.String()).
		Scan(&p.ID, &p.CreatedAt)
	require.NoError(t, err)

	return p
}

func insertCustomer(t *testing.T, pool *pgxpool.Pool) domain.Customer {
	t.Helper()
	ctx := t.Context()

	c := domain.Customer{
		UserID:  gofakeit.UUID(),
		Phone:   gofakeit.Phone(),
		Address: gofakeit.Address().Address,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO customers (user_id, phone, address) VALUES ($1, $2, $3) RETURNING id, created_at`,
		c.UserID, c.Phone, c.Address).Scan(&c.ID, &c.CreatedAt)
	require.NoError(t, err)

	return c
}

func fakeProduct(categoryID int64) domain.Product {
	return domain.Product{
		CategoryID:  categoryID,
		Name:        gofakeit.ProductName(),
		Slug:        gofakeit.UUID(),
		Description: gofakeit.ProductDescription(),
		Weight:      gofakeit.Float64Range(0.1, 5),
		Price: domain.Money{
			Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
			Currency: currency.MustParseISO(testCurrency),
		},
	}
}

func assertCart(t *testing.T, expected domain.Cart, actual domain.Cart) {
	t.Helper()

	diff := cmp.Diff(expected, actual, cartCmpOptions()...)
	assert.Empty(t, diff)
}

func assertOrder(t *testing.T, expected domain.Order, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Order{}, "ID", "CreatedAt", "DeliveryDate"),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	// The delivery date survives as a calendar date, time of day does not.
	assert.Equal(t, expected.DeliveryDate.Format(time.DateOnly), actual.DeliveryDate.Format(time.DateOnly))
}

func cartCmpOptions() []cmp.Option {
	// Custom comparers: currency.Unit is opaque, decimal scale differs between
	// Go literals and numeric(9,2) columns.
	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	return []cmp.Option{
		currencyComparer,
		decimalComparer,
		cmpopts.IgnoreFields(domain.Cart{}, "ID", "CreatedAt", "UpdatedAt"),
		cmpopts.IgnoreFields(domain.CartLine{}, "ID", "CartID", "CreatedAt"),
		cmpopts.EquateEmpty(),
	}
}
