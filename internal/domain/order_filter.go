package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderFilter has AND semantics across fields, OR semantics within each field slice.
// Used by the administrative order listing.
type OrderFilter struct {
	IDs         []int64
	CustomerIDs []int64
	Statuses    []OrderStatus
	CreatedAt   *TimeRange
}

func (f OrderFilter) Validate() error {
	if len(f.IDs) == 0 && len(f.CustomerIDs) == 0 && len(f.Statuses) == 0 && f.CreatedAt == nil {
		return errors.New("all fields are empty")
	}

	if f.CreatedAt != nil {
		if err := f.CreatedAt.Validate(); err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
	}

	return nil
}

type TimeRange struct {
	Before *time.Time
	After  *time.Time
}

func (t TimeRange) Validate() error {
	if t.Before == nil && t.After == nil {
		return errors.New("both Before and After are nil")
	}

	if t.Before != nil && t.After != nil {
		if t.Before.Before(*t.After) {
			return fmt.Errorf("before is before After")
		}
	}

	return nil
}
