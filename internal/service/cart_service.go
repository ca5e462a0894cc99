package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/port"
	"go.uber.org/zap"
)

// CartService mutates the single open cart of a principal. Every operation
// takes the resolved cart explicitly; nothing is read from ambient request
// state. Total recalculation happens inside the repository transaction, so
// the cart returned here is never stale.
type CartService struct {
	carts   port.CartRepository
	catalog port.CatalogRepository
	logger  *zap.Logger
}

func NewCartService(carts port.CartRepository, catalog port.CatalogRepository, logger *zap.Logger) *CartService {
	return &CartService{
		carts:   carts,
		catalog: catalog,
		logger:  logger,
	}
}

// ResolveCart returns the principal's open cart, creating it lazily.
func (s *CartService) ResolveCart(ctx context.Context, principal domain.Principal) (domain.Cart, error) {
	cart, err := s.carts.ResolveOpenCart(ctx, principal)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.ResolveOpenCart: %w", err)
	}

	return cart, nil
}

// AddProduct adds a product to the cart, or returns the cart unchanged when
// the line already exists. The second return reports whether a line was created.
func (s *CartService) AddProduct(ctx context.Context, cart domain.Cart, productSlug string) (domain.Cart, bool, error) {
	var zero domain.Cart

	product, err := s.catalog.GetProduct(ctx, productSlug)
	if err != nil {
		return zero, false, fmt.Errorf("catalog.GetProduct: %w", err)
	}

	_, created, err := s.carts.AddLine(ctx, cart, product)
	if err != nil {
		return zero, false, fmt.Errorf("carts.AddLine: %w", err)
	}

	s.logger.Debug("cart line added",
		zap.Int64("cart_id", cart.ID),
		zap.String("product", productSlug),
		zap.Bool("created", created))

	refreshed, err := s.carts.GetCart(ctx, cart.ID)
	if err != nil {
		return zero, false, fmt.Errorf("carts.GetCart: %w", err)
	}

	return refreshed, created, nil
}

func (s *CartService) RemoveProduct(ctx context.Context, cart domain.Cart, productSlug string) (domain.Cart, error) {
	var zero domain.Cart

	product, err := s.catalog.GetProduct(ctx, productSlug)
	if err != nil {
		return zero, fmt.Errorf("catalog.GetProduct: %w", err)
	}

	if err := s.carts.RemoveLine(ctx, cart, product.ID); err != nil {
		return zero, fmt.Errorf("carts.RemoveLine: %w", err)
	}

	refreshed, err := s.carts.GetCart(ctx, cart.ID)
	if err != nil {
		return zero, fmt.Errorf("carts.GetCart: %w", err)
	}

	return refreshed, nil
}

func (s *CartService) ChangeQuantity(ctx context.Context, cart domain.Cart, productSlug string, quantity int) (domain.Cart, error) {
	var zero domain.Cart

	// Checked before any write so a rejected quantity leaves the line untouched.
	if quantity < 1 {
		return zero, fmt.Errorf("quantity[%d]: %w", quantity, domain.ErrInvalidQuantity)
	}

	product, err := s.catalog.GetProduct(ctx, productSlug)
	if err != nil {
		return zero, fmt.Errorf("catalog.GetProduct: %w", err)
	}

	if _, err := s.carts.SetQuantity(ctx, cart, product.ID, quantity); err != nil {
		return zero, fmt.Errorf("carts.SetQuantity: %w", err)
	}

	refreshed, err := s.carts.GetCart(ctx, cart.ID)
	if err != nil {
		return zero, fmt.Errorf("carts.GetCart: %w", err)
	}

	return refreshed, nil
}
