package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart means the user has no cart lines to check out.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrPaymentSessionFailed means the payment processor could not open a
	// session. Never retried automatically; surfaced to the caller.
	ErrPaymentSessionFailed = errors.New("failed to create payment session")

	// ErrPaymentNotCompleted means the session exists but is not paid (or
	// could not be verified). No order is created.
	ErrPaymentNotCompleted = errors.New("payment not completed")

	// ErrNotYourSession means the session's metadata names a different user
	// than the caller.
	ErrNotYourSession = errors.New("payment session does not belong to user")

	// ErrOrderNotFound is returned by store lookups when no order carries
	// the given payment reference.
	ErrOrderNotFound = errors.New("order not found")

	// ErrDuplicatePaymentRef is returned by the store when an insert loses
	// the race on the payment_ref unique key.
	ErrDuplicatePaymentRef = errors.New("payment reference already used")

	// ErrSessionNotFound is returned when a checkout_sessions row is missing.
	ErrSessionNotFound = errors.New("checkout session record not found")
)

// InsufficientStockError reports a cart line whose quantity exceeds the
// product's current stock.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}
