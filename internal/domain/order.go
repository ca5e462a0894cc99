package domain

import (
	"fmt"
	"strings"
	"time"
)

// MinLeadTimeDays is the minimum gap between placing an order and the
// requested delivery date, boundary inclusive.
const MinLeadTimeDays = 3

type Order struct {
	ID         int64
	CustomerID int64
	CartID     int64

	FirstName    string
	LastName     string
	Phone        string
	Address      string
	Comment      string
	DeliveryDate time.Time
	Status       OrderStatus

	CreatedAt time.Time
}

// OrderInput is the checkout form payload. The cart and customer are passed
// alongside it explicitly, never read from ambient request state.
type OrderInput struct {
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	Comment      string
	DeliveryDate time.Time
}

// Validate checks required fields and the delivery lead time against now.
// It never mutates state; callers run it before any write.
func (in OrderInput) Validate(now time.Time) error {
	var missing []string

	if strings.TrimSpace(in.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(in.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing %s: %w", strings.Join(missing, ", "), ErrInvalidOrderInput)
	}

	minDate := calendarDate(now).AddDate(0, 0, MinLeadTimeDays)
	if calendarDate(in.DeliveryDate).Before(minDate) {
		return fmt.Errorf("delivery date %s is before %s: %w",
			in.DeliveryDate.Format(time.DateOnly), minDate.Format(time.DateOnly), ErrLeadTimeTooShort)
	}

	return nil
}

// calendarDate reduces t to the calendar date observed in t's own location.
// All dates land on UTC midnight, so comparing them compares (year, month, day)
// tuples and never instants from different zones.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
