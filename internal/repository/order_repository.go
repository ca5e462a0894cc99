package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/port"
)

const orderColumns = `id, customer_id, cart_id, first_name, last_name, phone, address, comment, status, delivery_date, created_at`

type orderRepository struct {
	db DB
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{db: pool}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	var o domain.Order

	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return o, fmt.Errorf("order[%d]: %w", orderID, ErrNotFound)
		}
		return o, fmt.Errorf("scanOrder: %w", err)
	}

	return o, nil
}

// PlaceOrder freezes the cart and creates the order in one all-or-nothing
// transaction. The conditional update on in_order makes exactly one of two
// concurrent calls win; the loser observes ErrCartAlreadyOrdered.
func (r *orderRepository) PlaceOrder(ctx context.Context, cart domain.Cart, customerID int64, input domain.OrderInput) (domain.Order, error) {
	var zero domain.Order

	if cart.ID == 0 {
		return zero, fmt.Errorf("cart ID is empty")
	}
	if customerID == 0 {
		return zero, fmt.Errorf("customer ID is empty")
	}

	order, err := withTx(ctx, r.db, func(tx pgx.Tx) (domain.Order, error) {
		var o domain.Order

		cmdTag, err := tx.Exec(ctx,
			`UPDATE carts SET in_order = TRUE, updated_at = NOW() WHERE id = $1 AND NOT in_order`,
			cart.ID)
		if err != nil {
			return o, fmt.Errorf("tx.Exec close cart: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)`, cart.ID).Scan(&exists); err != nil {
				return o, fmt.Errorf("tx.QueryRow: %w", err)
			}

			if exists {
				return o, fmt.Errorf("cart[%d]: %w", cart.ID, ErrCartAlreadyOrdered)
			}
			return o, fmt.Errorf("cart[%d]: %w", cart.ID, ErrNotFound)
		}

		o = domain.Order{
			CustomerID:   customerID,
			CartID:       cart.ID,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Phone:        input.Phone,
			Address:      input.Address,
			Comment:      input.Comment,
			DeliveryDate: input.DeliveryDate,
			Status:       domain.OrderStatusNew,
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO orders (customer_id, cart_id, first_name, last_name, phone, address, comment, status, delivery_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id, created_at`,
			customerID, cart.ID, input.FirstName, input.LastName, input.Phone, input.Address,
			input.Comment, string(domain.OrderStatusNew), input.DeliveryDate).
			Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return o, fmt.Errorf("cart[%d]: %w", cart.ID, ErrCartAlreadyOrdered)
			}
			return o, fmt.Errorf("tx.QueryRow insert order: %w", err)
		}

		return o, nil
	})
	if err != nil {
		return zero, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC, id DESC`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	var statuses []string
	for _, status := range filter.Statuses {
		statuses = append(statuses, string(status))
	}

	var createdAfter, createdBefore *time.Time
	if filter.CreatedAt != nil {
		createdAfter = filter.CreatedAt.After
		createdBefore = filter.CreatedAt.Before
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE ($1::BIGINT[] IS NULL OR id = ANY ($1))
		   AND ($2::BIGINT[] IS NULL OR customer_id = ANY ($2))
		   AND ($3::TEXT[] IS NULL OR status = ANY ($3))
		   AND ($4::TIMESTAMPTZ IS NULL OR created_at >= $4)
		   AND ($5::TIMESTAMPTZ IS NULL OR created_at <= $5)
		 ORDER BY created_at DESC, id DESC`,
		nilSliceIfEmpty(filter.IDs),
		nilSliceIfEmpty(filter.CustomerIDs),
		nilSliceIfEmpty(statuses),
		createdAfter,
		createdBefore)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	if orderID == 0 {
		return fmt.Errorf("orderID is empty")
	}
	if status == "" {
		return fmt.Errorf("status is empty")
	}

	if _, err := domain.ToOrderStatus(string(status)); err != nil {
		return fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
	}

	_, err := withTx(ctx, r.db, func(tx pgx.Tx) (struct{}, error) {
		var zero struct{}

		var current string
		err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).
			Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return zero, fmt.Errorf("order[%d]: %w", orderID, ErrNotFound)
			}
			return zero, fmt.Errorf("tx.QueryRow: %w", err)
		}

		currentStatus, err := domain.ToOrderStatus(current)
		if err != nil {
			return zero, fmt.Errorf("domain.ToOrderStatus[%s]: %w", current, err)
		}

		if !currentStatus.CanTransition(status) {
			return zero, fmt.Errorf("cannot transition from %s to %s", currentStatus, status)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE orders SET status = $2 WHERE id = $1`, orderID, string(status)); err != nil {
			return zero, fmt.Errorf("tx.Exec: %w", err)
		}

		return zero, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o         domain.Order
		statusRaw string
	)

	err := row.Scan(&o.ID, &o.CustomerID, &o.CartID, &o.FirstName, &o.LastName, &o.Phone,
		&o.Address, &o.Comment, &statusRaw, &o.DeliveryDate, &o.CreatedAt)
	if err != nil {
		return o, err
	}

	status, err := domain.ToOrderStatus(statusRaw)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", statusRaw, err)
	}
	o.Status = status

	return o, nil
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanOrder: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return orders, nil
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
