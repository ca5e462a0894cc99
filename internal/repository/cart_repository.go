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
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	db       DB
	currency currency.Unit
}

func NewCart(pool *pgxpool.Pool, unit currency.Unit) port.CartRepository {
	return &cartRepository{db: pool, currency: unit}
}

func NewCartWithTx(tx pgx.Tx, unit currency.Unit) port.CartRepository {
	return &cartRepository{db: tx, currency: unit}
}

func (r *cartRepository) ResolveOpenCart(ctx context.Context, principal domain.Principal) (domain.Cart, error) {
	var c domain.Cart

	if err := principal.Validate(); err != nil {
		return c, fmt.Errorf("principal.Validate: %w", err)
	}

	cart, err := withTx(ctx, r.db, func(tx pgx.Tx) (domain.Cart, error) {
		// ON CONFLICT against the partial unique index makes lazy creation
		// race-free: the loser of a concurrent resolve inserts nothing.
		if principal.Anonymous() {
			_, err := tx.Exec(ctx,
				`INSERT INTO carts (session_id, for_anonymous, total_price_currency)
				 VALUES ($1, TRUE, $2)
				 ON CONFLICT (session_id) WHERE NOT in_order AND session_id IS NOT NULL DO NOTHING`,
				principal.SessionID, r.currency.String())
			if err != nil {
				return c, fmt.Errorf("tx.Exec insert anonymous cart: %w", err)
			}

			return r.getOpenCartBySession(ctx, tx, principal.SessionID)
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO carts (customer_id, total_price_currency)
			 VALUES ($1, $2)
			 ON CONFLICT (customer_id) WHERE NOT in_order AND customer_id IS NOT NULL DO NOTHING`,
			principal.CustomerID, r.currency.String())
		if err != nil {
			return c, fmt.Errorf("tx.Exec insert cart: %w", err)
		}

		return r.getOpenCartByCustomer(ctx, tx, principal.CustomerID)
	})
	if err != nil {
		return c, fmt.Errorf("withTx: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) GetCart(ctx context.Context, cartID int64) (domain.Cart, error) {
	return r.getCartWhere(ctx, r.db, `c.id = $1`, cartID)
}

func (r *cartRepository) AddLine(ctx context.Context, cart domain.Cart, product domain.Product) (domain.CartLine, bool, error) {
	var zero domain.CartLine

	type lineCreated struct {
		line    domain.CartLine
		created bool
	}

	result, err := withTx(ctx, r.db, func(tx pgx.Tx) (lineCreated, error) {
		var lc lineCreated

		if err := lockOpenCart(ctx, tx, cart.ID); err != nil {
			return lc, fmt.Errorf("lockOpenCart: %w", err)
		}

		// Idempotent add: a pre-existing line stays untouched, quantity included.
		line := domain.CartLine{
			CartID:     cart.ID,
			CustomerID: cart.CustomerID,
			ProductID:  product.ID,
			Quantity:   1,
			LineTotal:  product.Price,
		}

		err := tx.QueryRow(ctx,
			`INSERT INTO cart_lines (cart_id, customer_id, product_id, quantity, line_total_amount, line_total_currency)
			 VALUES ($1, $2, $3, 1, $4, $5)
			 ON CONFLICT (cart_id, product_id) DO NOTHING
			 RETURNING id, created_at`,
			cart.ID, cart.CustomerID, product.ID, product.Price.Amount, product.Price.Currency.String()).
			Scan(&line.ID, &line.CreatedAt)
		if err == nil {
			lc.line, lc.created = line, true
		} else if errors.Is(err, pgx.ErrNoRows) {
			existing, err := getLine(ctx, tx, cart.ID, product.ID)
			if err != nil {
				return lc, fmt.Errorf("getLine: %w", err)
			}
			lc.line, lc.created = existing, false
		} else {
			return lc, fmt.Errorf("tx.QueryRow insert line: %w", err)
		}

		if err := recalculateCart(ctx, tx, cart.ID); err != nil {
			return lc, fmt.Errorf("recalculateCart: %w", err)
		}

		return lc, nil
	})
	if err != nil {
		return zero, false, fmt.Errorf("withTx: %w", err)
	}

	return result.line, result.created, nil
}

func (r *cartRepository) RemoveLine(ctx context.Context, cart domain.Cart, productID int64) error {
	_, err := withTx(ctx, r.db, func(tx pgx.Tx) (struct{}, error) {
		var zero struct{}

		if err := lockOpenCart(ctx, tx, cart.ID); err != nil {
			return zero, fmt.Errorf("lockOpenCart: %w", err)
		}

		cmdTag, err := tx.Exec(ctx,
			`DELETE FROM cart_lines WHERE cart_id = $1 AND product_id = $2`,
			cart.ID, productID)
		if err != nil {
			return zero, fmt.Errorf("tx.Exec delete line: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return zero, fmt.Errorf("line[cart=%d, product=%d]: %w", cart.ID, productID, ErrNotFound)
		}

		if err := recalculateCart(ctx, tx, cart.ID); err != nil {
			return zero, fmt.Errorf("recalculateCart: %w", err)
		}

		return zero, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, cart domain.Cart, productID int64, quantity int) (domain.CartLine, error) {
	var zero domain.CartLine

	if quantity < 1 {
		return zero, fmt.Errorf("quantity[%d]: %w", quantity, domain.ErrInvalidQuantity)
	}

	line, err := withTx(ctx, r.db, func(tx pgx.Tx) (domain.CartLine, error) {
		var l domain.CartLine

		if err := lockOpenCart(ctx, tx, cart.ID); err != nil {
			return l, fmt.Errorf("lockOpenCart: %w", err)
		}

		// The line total is recomputed from the current product price, so a
		// price change since the add is reflected on the next quantity update.
		var currencyCode string
		err := tx.QueryRow(ctx,
			`UPDATE cart_lines l
			 SET quantity = $3,
			     line_total_amount = $3 * p.price_amount
			 FROM products p
			 WHERE p.id = l.product_id AND l.cart_id = $1 AND l.product_id = $2
			 RETURNING l.id, l.cart_id, l.customer_id, l.product_id, l.quantity, l.line_total_amount, l.line_total_currency, l.created_at`,
			cart.ID, productID, quantity).
			Scan(&l.ID, &l.CartID, &l.CustomerID, &l.ProductID, &l.Quantity, &l.LineTotal.Amount, &currencyCode, &l.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return l, fmt.Errorf("line[cart=%d, product=%d]: %w", cart.ID, productID, ErrNotFound)
			}
			return l, fmt.Errorf("tx.QueryRow update line: %w", err)
		}

		parsedCurrency, err := currency.ParseISO(currencyCode)
		if err != nil {
			return l, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
		}
		l.LineTotal.Currency = parsedCurrency

		if err := recalculateCart(ctx, tx, cart.ID); err != nil {
			return l, fmt.Errorf("recalculateCart: %w", err)
		}

		return l, nil
	})
	if err != nil {
		return zero, fmt.Errorf("withTx: %w", err)
	}

	return line, nil
}

// lockOpenCart takes the cart row lock, serializing concurrent mutations of
// the same cart, and rejects mutation of a closed cart.
func lockOpenCart(ctx context.Context, tx pgx.Tx, cartID int64) error {
	var inOrder bool

	err := tx.QueryRow(ctx, `SELECT in_order FROM carts WHERE id = $1 FOR UPDATE`, cartID).
		Scan(&inOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("cart[%d]: %w", cartID, ErrNotFound)
		}
		return fmt.Errorf("tx.QueryRow: %w", err)
	}

	if inOrder {
		return fmt.Errorf("cart[%d]: %w", cartID, ErrCartAlreadyOrdered)
	}

	return nil
}

// recalculateCart refreshes the cached totals from the line state inside the
// same transaction as the mutation, so no reader observes a stale total.
func recalculateCart(ctx context.Context, tx pgx.Tx, cartID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE carts c
		 SET total_items        = agg.items,
		     total_price_amount = agg.total,
		     updated_at         = NOW()
		 FROM (SELECT COALESCE(SUM(quantity), 0)          AS items,
		              COALESCE(SUM(line_total_amount), 0) AS total
		       FROM cart_lines
		       WHERE cart_id = $1) agg
		 WHERE c.id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("tx.Exec: %w", err)
	}

	return nil
}

func getLine(ctx context.Context, tx pgx.Tx, cartID, productID int64) (domain.CartLine, error) {
	var (
		l            domain.CartLine
		currencyCode string
	)

	err := tx.QueryRow(ctx,
		`SELECT id, cart_id, customer_id, product_id, quantity, line_total_amount, line_total_currency, created_at
		 FROM cart_lines
		 WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID).
		Scan(&l.ID, &l.CartID, &l.CustomerID, &l.ProductID, &l.Quantity, &l.LineTotal.Amount, &currencyCode, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return l, fmt.Errorf("line[cart=%d, product=%d]: %w", cartID, productID, ErrNotFound)
		}
		return l, fmt.Errorf("tx.QueryRow: %w", err)
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return l, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}
	l.LineTotal.Currency = parsedCurrency

	return l, nil
}

func (r *cartRepository) getOpenCartByCustomer(ctx context.Context, db DB, customerID int64) (domain.Cart, error) {
	return r.getCartWhere(ctx, db, `c.customer_id = $1 AND NOT c.in_order`, customerID)
}

func (r *cartRepository) getOpenCartBySession(ctx context.Context, db DB, sessionID string) (domain.Cart, error) {
	return r.getCartWhere(ctx, db, `c.session_id = $1 AND NOT c.in_order`, sessionID)
}

func (r *cartRepository) getCartWhere(ctx context.Context, db DB, where string, arg any) (domain.Cart, error) {
	var c domain.Cart

	rows, err := db.Query(ctx,
		`SELECT c.id, c.customer_id, c.session_id, c.for_anonymous, c.in_order,
		        c.total_items, c.total_price_amount, c.total_price_currency, c.created_at, c.updated_at,
		        l.id, l.product_id, l.quantity, l.line_total_amount, l.line_total_currency, l.created_at,
		        p.category_id, p.name, p.slug, p.description, p.weight, p.price_amount, p.price_currency, p.created_at
		 FROM carts c
		 LEFT JOIN cart_lines l ON l.cart_id = c.id
		 LEFT JOIN products p ON p.id = l.product_id
		 WHERE `+where+`
		 ORDER BY l.id`, arg)
	if err != nil {
		return c, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		cart, line, err := scanCartRow(rows)
		if err != nil {
			return c, fmt.Errorf("scanCartRow: %w", err)
		}

		if !found {
			c = cart
			found = true
		}

		if line != nil {
			c.Lines = append(c.Lines, *line)
		}
	}
	if err := rows.Err(); err != nil {
		return c, fmt.Errorf("rows.Err: %w", err)
	}

	if !found {
		return c, fmt.Errorf("cart: %w", ErrNotFound)
	}

	return c, nil
}

// scanCartRow maps one joined row to the cart plus its (possibly absent) line.
func scanCartRow(rows pgx.Rows) (domain.Cart, *domain.CartLine, error) {
	var (
		c            domain.Cart
		currencyCode string

		lineID           *int64
		lineProductID    *int64
		lineQuantity     *int
		lineTotalAmount  *decimal.Decimal
		lineCurrencyCode *string
		lineCreatedAt    *time.Time

		productCategoryID  *int64
		productName        *string
		productSlug        *string
		productDescription *string
		productWeight      *float64
		productPriceAmount *decimal.Decimal
		productCurrency    *string
		productCreatedAt   *time.Time
	)

	err := rows.Scan(&c.ID, &c.CustomerID, &c.SessionID, &c.Anonymous, &c.InOrder,
		&c.TotalItems, &c.TotalPrice.Amount, &currencyCode, &c.CreatedAt, &c.UpdatedAt,
		&lineID, &lineProductID, &lineQuantity, &lineTotalAmount, &lineCurrencyCode, &lineCreatedAt,
		&productCategoryID, &productName, &productSlug, &productDescription, &productWeight,
		&productPriceAmount, &productCurrency, &productCreatedAt)
	if err != nil {
		return c, nil, fmt.Errorf("rows.Scan: %w", err)
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return c, nil, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}
	c.TotalPrice.Currency = parsedCurrency

	if lineID == nil {
		return c, nil, nil
	}

	lineCurrency, err := currency.ParseISO(lo.FromPtr(lineCurrencyCode))
	if err != nil {
		return c, nil, fmt.Errorf("currency[%s] is not valid: %w", lo.FromPtr(lineCurrencyCode), err)
	}

	line := domain.CartLine{
		ID:         lo.FromPtr(lineID),
		CartID:     c.ID,
		CustomerID: c.CustomerID,
		ProductID:  lo.FromPtr(lineProductID),
		Quantity:   lo.FromPtr(lineQuantity),
		LineTotal:  domain.Money{Amount: lo.FromPtr(lineTotalAmount), Currency: lineCurrency},
		CreatedAt:  lo.FromPtr(lineCreatedAt),
	}

	if productName != nil {
		productUnit, err := currency.ParseISO(lo.FromPtr(productCurrency))
		if err != nil {
			return c, nil, fmt.Errorf("currency[%s] is not valid: %w", lo.FromPtr(productCurrency), err)
		}

		line.Product = &domain.Product{
			ID:          lo.FromPtr(lineProductID),
			CategoryID:  lo.FromPtr(productCategoryID),
			Name:        lo.FromPtr(productName),
			Slug:        lo.FromPtr(productSlug),
			Description: lo.FromPtr(productDescription),
			Weight:      lo.FromPtr(productWeight),
			Price:       domain.Money{Amount: lo.FromPtr(productPriceAmount), Currency: productUnit},
			CreatedAt:   lo.FromPtr(productCreatedAt),
		}
	}

	return c, &line, nil
}
