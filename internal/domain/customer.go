package domain

import (
	"errors"
	"time"
)

// Customer wraps one authenticated principal 1:1. Activation is flipped by
// the external email-verification collaborator; login is refused until then.
type Customer struct {
	ID       int64
	UserID   string
	IsActive bool
	Phone    string
	Address  string

	Orders []Order

	CreatedAt time.Time
}

// Principal is the identity resolved by the external auth/session provider:
// either an authenticated customer or an anonymous session token. It is
// trusted as-is, credentials are never re-validated here.
type Principal struct {
	CustomerID int64
	SessionID  string
}

func (p Principal) Anonymous() bool {
	return p.CustomerID == 0
}

func (p Principal) Validate() error {
	if p.CustomerID == 0 && p.SessionID == "" {
		return errors.New("neither customer nor session")
	}
	return nil
}
