package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/port"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type RedisProductCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisProductCache(client *redis.Client) port.ProductCache {
	return &RedisProductCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

// cachedProduct is the wire form: currency.Unit and decimal.Decimal do not
// round-trip through encoding/json as-is.
type cachedProduct struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Weight      float64   `json:"weight"`
	PriceAmount string    `json:"price_amount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *RedisProductCache) Get(ctx context.Context, slug string) (domain.Product, error) {
	var p domain.Product

	data, err := c.client.Get(ctx, cacheKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return p, ErrCacheMiss
	}
	if err != nil {
		return p, fmt.Errorf("client.Get: %w", err)
	}

	var cached cachedProduct
	if err := json.Unmarshal(data, &cached); err != nil {
		return p, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return cached.toDomain()
}

func (c *RedisProductCache) Set(ctx context.Context, product domain.Product) error {
	data, err := json.Marshal(fromDomain(product))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	// Jitter spreads expiry so a catalog page does not refill all at once.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := c.baseTTL + jitter

	if err := c.client.Set(ctx, cacheKey(product.Slug), data, ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (c *RedisProductCache) Delete(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, cacheKey(slug)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}

func cacheKey(slug string) string {
	return "product:" + slug
}

func fromDomain(p domain.Product) cachedProduct {
	return cachedProduct{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Weight:      p.Weight,
		PriceAmount: p.Price.Amount.String(),
		Currency:    p.Price.Currency.String(),
		CreatedAt:   p.CreatedAt,
	}
}

func (c cachedProduct) toDomain() (domain.Product, error) {
	var p domain.Product

	amount, err := decimal.NewFromString(c.PriceAmount)
	if err != nil {
		return p, fmt.Errorf("decimal.NewFromString[%s]: %w", c.PriceAmount, err)
	}

	parsedCurrency, err := currency.ParseISO(c.Currency)
	if err != nil {
		return p, fmt.Errorf("currency[%s] is not valid: %w", c.Currency, err)
	}

	return domain.Product{
		ID:          c.ID,
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Weight:      c.Weight,
		Price:       domain.Money{Amount: amount, Currency: parsedCurrency},
		CreatedAt:   c.CreatedAt,
	}, nil
}
