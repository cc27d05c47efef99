package order

import "errors"

// Sentinel errors for the order domain, checked with errors.Is.
var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification signals an optimistic-lock conflict; the
	// unit of work retries transactions that fail with it.
	ErrConcurrentModification = errors.New("order was modified by another transaction")

	ErrEmptyItems        = errors.New("order must have at least one item")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotCancellable    = errors.New("order cannot be cancelled in its current status")
	ErrNotOwned          = errors.New("order does not belong to this user")

	// ErrNumberExhausted is returned when order number generation keeps
	// colliding with existing orders after the attempt cap.
	ErrNumberExhausted = errors.New("could not generate a unique order number")

	// ErrPaymentNotVerified is returned when bank-transfer verification
	// finds no matching transaction; the order is left cancelled with
	// payment status failed.
	ErrPaymentNotVerified = errors.New("payment could not be verified")
)
