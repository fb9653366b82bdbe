package payments

import "context"

// SessionLine is one priced line item sent to the payment processor.
// UnitAmount is in minor currency units (cents).
type SessionLine struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// SessionParams carries everything needed to open a hosted checkout session.
type SessionParams struct {
	CustomerEmail string
	Currency      string
	Lines         []SessionLine
	SuccessURL    string
	CancelURL     string
	Metadata      Metadata
}

// Session is the processor-agnostic view of a payment session.
type Session struct {
	ID       string
	URL      string
	Paid     bool
	Metadata Metadata
}

// Gateway is the payment processor boundary. Implementations must honor
// ctx cancellation so a slow processor surfaces as an error instead of a
// hung request.
type Gateway interface {
	CreateSession(ctx context.Context, params *SessionParams) (*Session, error)
	RetrieveSession(ctx context.Context, id string) (*Session, error)
}
