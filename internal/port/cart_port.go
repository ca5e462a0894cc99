package port

import (
	"context"

	"github.com/nikolayk812/sweetshop/internal/domain"
)

type CartRepository interface {
	// ResolveOpenCart returns the principal's single open cart, creating it
	// lazily on first access. Concurrent resolution never yields two open carts.
	ResolveOpenCart(ctx context.Context, principal domain.Principal) (domain.Cart, error)

	GetCart(ctx context.Context, cartID int64) (domain.Cart, error)

	// AddLine is idempotent on (cart, product): a pre-existing line is returned
	// unchanged with created=false, quantity is not incremented.
	AddLine(ctx context.Context, cart domain.Cart, product domain.Product) (domain.CartLine, bool, error)

	RemoveLine(ctx context.Context, cart domain.Cart, productID int64) error

	SetQuantity(ctx context.Context, cart domain.Cart, productID int64, quantity int) (domain.CartLine, error)
}
