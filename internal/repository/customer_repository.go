package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/port"
)

type customerRepository struct {
	db DB
}

func NewCustomer(pool *pgxpool.Pool) port.CustomerRepository {
	return &customerRepository{db: pool}
}

func NewCustomerWithTx(tx pgx.Tx) port.CustomerRepository {
	return &customerRepository{db: tx}
}

func (r *customerRepository) InsertCustomer(ctx context.Context, customer domain.Customer) (int64, error) {
	if customer.UserID == "" {
		return 0, fmt.Errorf("user ID is empty")
	}

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO customers (user_id, is_active, phone, address)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		customer.UserID, customer.IsActive, customer.Phone, customer.Address).
		Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("customer[%s]: %w", customer.UserID, ErrAlreadyExists)
		}
		return 0, fmt.Errorf("db.QueryRow: %w", err)
	}

	return id, nil
}

func (r *customerRepository) GetCustomer(ctx context.Context, customerID int64) (domain.Customer, error) {
	return r.getCustomerWhere(ctx, `id = $1`, customerID)
}

func (r *customerRepository) GetCustomerByUserID(ctx context.Context, userID string) (domain.Customer, error) {
	return r.getCustomerWhere(ctx, `user_id = $1`, userID)
}

func (r *customerRepository) ActivateCustomer(ctx context.Context, userID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE customers SET is_active = TRUE WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer[%s]: %w", userID, ErrNotFound)
	}

	return nil
}

func (r *customerRepository) getCustomerWhere(ctx context.Context, where string, arg any) (domain.Customer, error) {
	var c domain.Customer

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, is_active, phone, address, created_at FROM customers WHERE `+where, arg).
		Scan(&c.ID, &c.UserID, &c.IsActive, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c, fmt.Errorf("customer: %w", ErrNotFound)
		}
		return c, fmt.Errorf("db.QueryRow: %w", err)
	}

	return c, nil
}
