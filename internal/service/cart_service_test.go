package service

import (
	"context"
	"testing"

	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCartServiceAddProduct(t *testing.T) {
	ctx := t.Context()
	cart := domain.Cart{ID: 42}
	product := domain.Product{ID: 7, Slug: "marzipan-bar"}

	catalog := &catalogRepoMock{
		getProduct: func(_ context.Context, slug string) (domain.Product, error) {
			assert.Equal(t, product.Slug, slug)
			return product, nil
		},
	}
	carts := &cartRepoMock{
		addLine: func(_ context.Context, gotCart domain.Cart, gotProduct domain.Product) (domain.CartLine, bool, error) {
			assert.Equal(t, cart.ID, gotCart.ID)
			assert.Equal(t, product.ID, gotProduct.ID)
			return domain.CartLine{CartID: cart.ID, ProductID: product.ID, Quantity: 1}, true, nil
		},
		getCart: func(_ context.Context, cartID int64) (domain.Cart, error) {
			return domain.Cart{ID: cart.ID, TotalItems: 1}, nil
		},
	}

	s := NewCartService(carts, catalog, zap.NewNop())

	refreshed, created, err := s.AddProduct(ctx, cart, product.Slug)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, refreshed.TotalItems)
}

func TestCartServiceChangeQuantity(t *testing.T) {
	ctx := t.Context()
	cart := domain.Cart{ID: 42}

	t.Run("rejected before any lookup or write", func(t *testing.T) {
		// All mock fields are nil: any collaborator call panics the test.
		s := NewCartService(&cartRepoMock{}, &catalogRepoMock{}, zap.NewNop())

		for _, quantity := range []int{0, -3} {
			_, err := s.ChangeQuantity(ctx, cart, "marzipan-bar", quantity)
			require.ErrorIs(t, err, domain.ErrInvalidQuantity)
		}
	})

	t.Run("ok", func(t *testing.T) {
		product := domain.Product{ID: 7, Slug: "marzipan-bar"}

		catalog := &catalogRepoMock{
			getProduct: func(_ context.Context, slug string) (domain.Product, error) {
				return product, nil
			},
		}
		carts := &cartRepoMock{
			setQuantity: func(_ context.Context, gotCart domain.Cart, productID int64, quantity int) (domain.CartLine, error) {
				assert.Equal(t, product.ID, productID)
				assert.Equal(t, 3, quantity)
				return domain.CartLine{ProductID: productID, Quantity: quantity}, nil
			},
			getCart: func(_ context.Context, cartID int64) (domain.Cart, error) {
				return domain.Cart{ID: cart.ID, TotalItems: 3}, nil
			},
		}

		s := NewCartService(carts, catalog, zap.NewNop())

		refreshed, err := s.ChangeQuantity(ctx, cart, product.Slug, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, refreshed.TotalItems)
	})
}

func TestCartServiceRemoveProduct(t *testing.T) {
	ctx := t.Context()
	cart := domain.Cart{ID: 42}
	product := domain.Product{ID: 7, Slug: "marzipan-bar"}

	removed := false
	catalog := &catalogRepoMock{
		getProduct: func(_ context.Context, slug string) (domain.Product, error) {
			return product, nil
		},
	}
	carts := &cartRepoMock{
		removeLine: func(_ context.Context, gotCart domain.Cart, productID int64) error {
			assert.Equal(t, product.ID, productID)
			removed = true
			return nil
		},
		getCart: func(_ context.Context, cartID int64) (domain.Cart, error) {
			return domain.Cart{ID: cart.ID}, nil
		},
	}

	s := NewCartService(carts, catalog, zap.NewNop())

	refreshed, err := s.RemoveProduct(ctx, cart, product.Slug)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.True(t, refreshed.Empty())
}

func TestCartServiceResolveCart(t *testing.T) {
	ctx := t.Context()
	principal := domain.Principal{CustomerID: 5}

	carts := &cartRepoMock{
		resolveOpenCart: func(_ context.Context, gotPrincipal domain.Principal) (domain.Cart, error) {
			assert.Equal(t, principal, gotPrincipal)
			return domain.Cart{ID: 42, CustomerID: &principal.CustomerID}, nil
		},
	}

	s := NewCartService(carts, &catalogRepoMock{}, zap.NewNop())

	cart, err := s.ResolveCart(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cart.ID)
}
