package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/port"
	"go.uber.org/zap"
)

// CustomerService wraps registration and the activation gate. The actual
// credential checks and verification-email mechanics live in external
// collaborators; this service only owns the customer record and its flag.
type CustomerService struct {
	customers port.CustomerRepository
	orders    port.OrderRepository
	logger    *zap.Logger
}

func NewCustomerService(customers port.CustomerRepository, orders port.OrderRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		orders:    orders,
		logger:    logger,
	}
}

// Register creates an inactive customer; activation happens once the
// email-verification collaborator calls Activate.
func (s *CustomerService) Register(ctx context.Context, userID, phone, address string) (domain.Customer, error) {
	var zero domain.Customer

	customer := domain.Customer{
		UserID:  userID,
		Phone:   phone,
		Address: address,
	}

	id, err := s.customers.InsertCustomer(ctx, customer)
	if err != nil {
		return zero, fmt.Errorf("customers.InsertCustomer: %w", err)
	}
	customer.ID = id

	s.logger.Info("customer registered", zap.Int64("customer_id", id), zap.String("user_id", userID))

	return customer, nil
}

func (s *CustomerService) Activate(ctx context.Context, userID string) error {
	if err := s.customers.ActivateCustomer(ctx, userID); err != nil {
		return fmt.Errorf("customers.ActivateCustomer: %w", err)
	}

	s.logger.Info("customer activated", zap.String("user_id", userID))

	return nil
}

// Login resolves the customer for an authenticated principal and refuses
// session establishment while the account is not activated.
func (s *CustomerService) Login(ctx context.Context, userID string) (domain.Customer, error) {
	var zero domain.Customer

	customer, err := s.customers.GetCustomerByUserID(ctx, userID)
	if err != nil {
		return zero, fmt.Errorf("customers.GetCustomerByUserID: %w", err)
	}

	if !customer.IsActive {
		return zero, fmt.Errorf("customer[%s]: %w", userID, domain.ErrCustomerInactive)
	}

	return customer, nil
}

// Account returns the customer with the append-only orders collection loaded.
func (s *CustomerService) Account(ctx context.Context, customerID int64) (domain.Customer, error) {
	var zero domain.Customer

	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return zero, fmt.Errorf("customers.GetCustomer: %w", err)
	}

	orders, err := s.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return zero, fmt.Errorf("orders.ListByCustomer: %w", err)
	}
	customer.Orders = orders

	return customer, nil
}
