package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/port"
	"go.uber.org/zap"
)

// OrderService drives the checkout workflow: all validation runs before any
// write, then the repository freezes the cart and creates the order in one
// transaction.
type OrderService struct {
	orders port.OrderRepository
	carts  port.CartRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewOrderService(orders port.OrderRepository, carts port.CartRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		carts:  carts,
		logger: logger,
		now:    time.Now,
	}
}

func (s *OrderService) PlaceOrder(ctx context.Context, cart domain.Cart, customer domain.Customer, input domain.OrderInput) (domain.Order, error) {
	var zero domain.Order

	// Re-read the cart rather than trusting the caller's copy of the lines.
	fresh, err := s.carts.GetCart(ctx, cart.ID)
	if err != nil {
		return zero, fmt.Errorf("carts.GetCart: %w", err)
	}

	if fresh.Empty() {
		return zero, fmt.Errorf("cart[%d]: %w", cart.ID, domain.ErrCartEmpty)
	}

	if err := input.Validate(s.now()); err != nil {
		return zero, fmt.Errorf("input.Validate: %w", err)
	}

	order, err := s.orders.PlaceOrder(ctx, fresh, customer.ID, input)
	if err != nil {
		return zero, fmt.Errorf("orders.PlaceOrder: %w", err)
	}

	s.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("cart_id", cart.ID),
		zap.Int64("customer_id", customer.ID),
		zap.String("delivery_date", order.DeliveryDate.Format(time.DateOnly)))

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListByCustomer: %w", err)
	}

	return orders, nil
}

// SearchOrders backs the administrative order listing.
func (s *OrderService) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	orders, err := s.orders.SearchOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}

	return orders, nil
}

// AdvanceStatus is the administrative status transition; the repository
// rejects anything but a forward step.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	if err := s.orders.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("orders.UpdateOrderStatus: %w", err)
	}

	s.logger.Info("order status advanced",
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)))

	return nil
}
