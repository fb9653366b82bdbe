package checkout

import (
	"context"
	"time"

	"github.com/brightbasket/brightbasket-golang/internal/models"
	"github.com/shopspring/decimal"
)

// NewOrder is everything the store needs to materialize one order.
type NewOrder struct {
	UserID     int64
	Reference  string
	Total      decimal.Decimal
	PaymentRef string
	Shipping   models.ShippingAddress
	Items      []LineItem
}

// SessionRecord is the audit row written when a payment session is opened,
// used by the reconciliation worker to spot sessions that never confirmed.
type SessionRecord struct {
	SessionID string
	UserID    int64
	Amount    decimal.Decimal
}

// Store is the persistence boundary of the checkout flow.
type Store interface {
	// CartLines reads the user's current cart joined against authoritative
	// product rows. Called immediately before every pricing decision.
	CartLines(ctx context.Context, userID int64) ([]CartLine, error)

	// OrderIDByPaymentRef returns the order already created for a payment
	// reference, or ErrOrderNotFound.
	OrderIDByPaymentRef(ctx context.Context, paymentRef string) (int64, error)

	// CreateOrder inserts the order header, its item snapshots, decrements
	// stock and removes the snapshotted cart lines in a single transaction.
	// Returns
	// ErrDuplicatePaymentRef when the payment_ref unique key collides and
	// *InsufficientStockError when a decrement would go negative.
	CreateOrder(ctx context.Context, order *NewOrder) (int64, error)

	// RecordSession stores a pending checkout_sessions audit row.
	RecordSession(ctx context.Context, rec *SessionRecord) error

	// CompleteSession marks a session record completed, or ErrSessionNotFound.
	CompleteSession(ctx context.Context, sessionID string) error

	// MarkAbandonedSessions flags pending sessions created before cutoff and
	// returns how many were flagged.
	MarkAbandonedSessions(ctx context.Context, cutoff time.Time) (int64, error)
}
