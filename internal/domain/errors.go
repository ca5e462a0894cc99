package domain

import "errors"

// Validation errors, checked before any write so a failure never leaves
// partial state behind. Recovered at the request boundary.
var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidOrderInput = errors.New("invalid order input")
	ErrLeadTimeTooShort  = errors.New("delivery date is inside the lead-time window")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrCustomerInactive  = errors.New("customer is not activated")
)
