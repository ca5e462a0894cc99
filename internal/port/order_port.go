package port

import (
	"context"

	"github.com/nikolayk812/sweetshop/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)

	// PlaceOrder atomically closes the cart and creates the order bound to it.
	// A cart already closed by a concurrent call surfaces ErrCartAlreadyOrdered.
	PlaceOrder(ctx context.Context, cart domain.Cart, customerID int64, input domain.OrderInput) (domain.Order, error)

	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
}
