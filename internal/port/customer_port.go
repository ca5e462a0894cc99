package port

import (
	"context"

	"github.com/nikolayk812/sweetshop/internal/domain"
)

type CustomerRepository interface {
	InsertCustomer(ctx context.Context, customer domain.Customer) (int64, error)

	GetCustomer(ctx context.Context, customerID int64) (domain.Customer, error)
	GetCustomerByUserID(ctx context.Context, userID string) (domain.Customer, error)

	// ActivateCustomer is invoked by the email-verification collaborator.
	ActivateCustomer(ctx context.Context, userID string) error
}
