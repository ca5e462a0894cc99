package domain

import (
	"fmt"
	"time"

	"golang.org/x/text/currency"
)

// Cart is the single open cart of its owner while InOrder is false.
// Once an order is placed against it, InOrder flips to true exactly once
// and the cart becomes immutable.
type Cart struct {
	ID         int64
	CustomerID *int64 // nil for anonymous carts
	SessionID  *string
	Anonymous  bool
	InOrder    bool

	Lines []CartLine

	// Cached aggregates, recomputed transactionally after every line mutation.
	TotalItems int
	TotalPrice Money

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartLine struct {
	ID         int64
	CartID     int64
	CustomerID *int64
	ProductID  int64
	Quantity   int
	LineTotal  Money

	Product *Product

	CreatedAt time.Time
}

// Recalculate recomputes the cached totals from the current line state.
// Pure function of the lines; callers persist the result in the same
// transaction as the mutation that made the cache stale.
func (c *Cart) Recalculate(unit currency.Unit) error {
	totalItems := 0
	totalPrice := ZeroMoney(unit)

	for _, line := range c.Lines {
		totalItems += line.Quantity

		sum, err := totalPrice.Add(line.LineTotal)
		if err != nil {
			return fmt.Errorf("totalPrice.Add: %w", err)
		}
		totalPrice = sum
	}

	c.TotalItems = totalItems
	c.TotalPrice = totalPrice
	return nil
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}
