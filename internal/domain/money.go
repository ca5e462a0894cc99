package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

func ZeroMoney(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

// Mul multiplies the amount by an integer factor, i.e. a line quantity.
func (m Money) Mul(factor int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(factor))),
		Currency: m.Currency,
	}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s != %s", m.Currency, other.Currency)
	}

	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}, nil
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}
