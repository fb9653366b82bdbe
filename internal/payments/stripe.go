package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// StripeGateway implements Gateway against Stripe's hosted Checkout Sessions.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateSession(ctx context.Context, params *SessionParams) (*Session, error) {
	meta, err := params.Metadata.Encode()
	if err != nil {
		return nil, err
	}

	currency := params.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(params.Lines))
	for _, line := range params.Lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
				UnitAmount: stripe.Int64(line.UnitAmount),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(params.CustomerEmail),
		LineItems:     lineItems,
		SuccessURL:    stripe.String(params.SuccessURL),
		CancelURL:     stripe.String(params.CancelURL),
	}
	sessionParams.Context = ctx
	for key, value := range meta {
		sessionParams.AddMetadata(key, value)
	}

	sess, err := g.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session create: %w", err)
	}

	return &Session{
		ID:       sess.ID,
		URL:      sess.URL,
		Paid:     sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Metadata: params.Metadata,
	}, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, id string) (*Session, error) {
	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx

	sess, err := g.api.CheckoutSessions.Get(id, getParams)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session retrieve: %w", err)
	}

	meta, err := DecodeMetadata(sess.Metadata)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:       sess.ID,
		URL:      sess.URL,
		Paid:     sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Metadata: meta,
	}, nil
}
