package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/brightbasket/brightbasket-golang/internal/models"
	"github.com/brightbasket/brightbasket-golang/internal/payments"
	"github.com/google/uuid"
)

// Service is the checkout flow: price validation, payment session creation
// and order materialization.
type Service interface {
	// InitiateCheckout validates the user's cart against authoritative
	// prices and stock, opens a payment session for the computed total and
	// returns the redirect URL.
	InitiateCheckout(ctx context.Context, userID int64, email string, shipping models.ShippingAddress, origin string) (string, error)

	// ConfirmOrder verifies a paid session belonging to the caller and
	// idempotently materializes it into an order, clearing the cart.
	ConfirmOrder(ctx context.Context, userID int64, sessionID string) (int64, error)
}

// ServiceImpl wires the store and the payment gateway together.
type ServiceImpl struct {
	store   Store
	gateway payments.Gateway
}

func NewService(store Store, gateway payments.Gateway) *ServiceImpl {
	return &ServiceImpl{store: store, gateway: gateway}
}

func (s *ServiceImpl) InitiateCheckout(ctx context.Context, userID int64, email string, shipping models.ShippingAddress, origin string) (string, error) {
	// Fresh read: the cart table is the source of truth, never a
	// client-supplied copy.
	lines, err := s.store.CartLines(ctx, userID)
	if err != nil {
		return "", err
	}

	items, total, err := PriceCart(lines)
	if err != nil {
		return "", err
	}

	sessionLines := make([]payments.SessionLine, 0, len(items))
	for _, item := range items {
		sessionLines = append(sessionLines, payments.SessionLine{
			Name:       item.Name,
			UnitAmount: MinorUnits(item.UnitPrice),
			Quantity:   int64(item.Quantity),
		})
	}

	params := &payments.SessionParams{
		CustomerEmail: email,
		Lines:         sessionLines,
		SuccessURL:    origin + "/profile?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     origin + "/checkout?payment=canceled",
		Metadata: payments.Metadata{
			UserID:   userID,
			Shipping: shipping,
		},
	}

	sess, err := s.gateway.CreateSession(ctx, params)
	if err != nil {
		if errors.Is(err, payments.ErrBadMetadata) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrPaymentSessionFailed, err)
	}

	// The session is already live at the processor, so a failure to write
	// the audit row must not fail the checkout. It only costs the
	// reconciliation worker visibility of this session.
	record := &SessionRecord{SessionID: sess.ID, UserID: userID, Amount: total}
	if err := s.store.RecordSession(ctx, record); err != nil {
		log.Printf("WARNING: could not record checkout session %s: %v", sess.ID, err)
	}

	return sess.URL, nil
}

func (s *ServiceImpl) ConfirmOrder(ctx context.Context, userID int64, sessionID string) (int64, error) {
	sess, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, payments.ErrBadMetadata) {
			// A session we cannot verify is a session we do not turn
			// into an order.
			return 0, fmt.Errorf("%w: %v", ErrPaymentNotCompleted, err)
		}
		return 0, fmt.Errorf("retrieve payment session: %w", err)
	}

	if sess.Metadata.UserID != userID {
		return 0, ErrNotYourSession
	}
	if !sess.Paid {
		return 0, ErrPaymentNotCompleted
	}

	// Idempotency: a second confirmation for the same session is a no-op
	// success returning the existing order.
	if orderID, err := s.store.OrderIDByPaymentRef(ctx, sess.ID); err == nil {
		log.Printf("Duplicate confirmation for session %s, returning order %d", sess.ID, orderID)
		return orderID, nil
	} else if !errors.Is(err, ErrOrderNotFound) {
		return 0, err
	}

	// Re-read the cart immediately before committing; prices and
	// quantities captured earlier in the flow are not trusted here.
	lines, err := s.store.CartLines(ctx, userID)
	if err != nil {
		return 0, err
	}
	items, total, err := PriceCart(lines)
	if err != nil {
		return 0, err
	}

	order := &NewOrder{
		UserID:     userID,
		Reference:  uuid.NewString(),
		Total:      total,
		PaymentRef: sess.ID,
		Shipping:   sess.Metadata.Shipping,
		Items:      items,
	}

	orderID, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, ErrDuplicatePaymentRef) {
			// Lost the insert race against a concurrent confirmation
			// of the same session; theirs is the order.
			return s.store.OrderIDByPaymentRef(ctx, sess.ID)
		}
		return 0, err
	}

	if err := s.store.CompleteSession(ctx, sess.ID); err != nil {
		log.Printf("WARNING: order %d created but session %s not marked completed: %v", orderID, sess.ID, err)
	}

	return orderID, nil
}

// ReconcileStaleSessions flags pending payment sessions older than maxAge as
// abandoned and logs how many were flagged. Run periodically from main.
func (s *ServiceImpl) ReconcileStaleSessions(ctx context.Context, maxAge time.Duration) {
	count, err := s.store.MarkAbandonedSessions(ctx, time.Now().Add(-maxAge))
	if err != nil {
		log.Printf("ERROR: session reconciliation failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Session reconciliation: %d pending sessions marked abandoned", count)
	}
}
