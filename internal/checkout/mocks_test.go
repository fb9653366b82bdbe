package checkout

import (
	"context"
	"time"

	"github.com/brightbasket/brightbasket-golang/internal/payments"
)

// fakeStore implements Store in memory for service tests.
type fakeStore struct {
	lines         []CartLine
	linesErr      error
	afterCartRead func() // runs after CartLines returns its snapshot

	ordersByRef map[string]int64
	created     []*NewOrder
	createErr   error
	nextOrderID int64
	cartCleared bool

	recorded    []*SessionRecord
	recordErr   error
	completed   []string
	completeErr error
	abandoned   int64

	// missFirstLookup makes the first OrderIDByPaymentRef call miss even if
	// the ref exists, simulating a ref inserted by a concurrent confirmation
	// between lookup and insert.
	missFirstLookup bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		ordersByRef: map[string]int64{},
		nextOrderID: 1,
	}
}

func (f *fakeStore) CartLines(_ context.Context, _ int64) ([]CartLine, error) {
	if f.linesErr != nil {
		return nil, f.linesErr
	}
	snapshot := make([]CartLine, len(f.lines))
	copy(snapshot, f.lines)
	if f.afterCartRead != nil {
		f.afterCartRead()
	}
	return snapshot, nil
}

func (f *fakeStore) OrderIDByPaymentRef(_ context.Context, paymentRef string) (int64, error) {
	if f.missFirstLookup {
		f.missFirstLookup = false
		return 0, ErrOrderNotFound
	}
	if id, ok := f.ordersByRef[paymentRef]; ok {
		return id, nil
	}
	return 0, ErrOrderNotFound
}

func (f *fakeStore) CreateOrder(_ context.Context, order *NewOrder) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	if _, ok := f.ordersByRef[order.PaymentRef]; ok {
		return 0, ErrDuplicatePaymentRef
	}

	id := f.nextOrderID
	f.nextOrderID++
	f.ordersByRef[order.PaymentRef] = id
	f.created = append(f.created, order)

	// The real store deletes only the snapshotted cart lines in the same
	// transaction, so lines added after the read survive.
	ordered := map[int64]bool{}
	for _, item := range order.Items {
		ordered[item.ProductID] = true
	}
	remaining := f.lines[:0]
	for _, line := range f.lines {
		if !ordered[line.ProductID] {
			remaining = append(remaining, line)
		}
	}
	f.lines = remaining
	f.cartCleared = len(f.lines) == 0
	return id, nil
}

func (f *fakeStore) RecordSession(_ context.Context, rec *SessionRecord) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.recorded = append(f.recorded, rec)
	return nil
}

func (f *fakeStore) CompleteSession(_ context.Context, sessionID string) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completed = append(f.completed, sessionID)
	return nil
}

func (f *fakeStore) MarkAbandonedSessions(_ context.Context, _ time.Time) (int64, error) {
	return f.abandoned, nil
}

// fakeGateway implements payments.Gateway for service tests.
type fakeGateway struct {
	createParams  *payments.SessionParams // captures the last CreateSession call
	createSession *payments.Session
	createErr     error

	sessions    map[string]*payments.Session
	retrieveErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: map[string]*payments.Session{}}
}

func (f *fakeGateway) CreateSession(_ context.Context, params *payments.SessionParams) (*payments.Session, error) {
	f.createParams = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createSession != nil {
		return f.createSession, nil
	}
	return &payments.Session{
		ID:       "cs_test_1",
		URL:      "https://checkout.example/cs_test_1",
		Metadata: params.Metadata,
	}, nil
}

func (f *fakeGateway) RetrieveSession(_ context.Context, id string) (*payments.Session, error) {
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	if sess, ok := f.sessions[id]; ok {
		return sess, nil
	}
	return nil, ErrSessionNotFound
}
