package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/cuencos-cuarzo/boletos/internal/domain"
)

type stripeProcessor struct {
	api *client.API
}

// NewStripeProcessor builds a Processor backed by Stripe Checkout.
// A nil backends value uses Stripe's default API endpoints.
func NewStripeProcessor(secretKey string, backends *stripe.Backends) Processor {
	return &stripeProcessor{api: client.New(secretKey, backends)}
}

func (p *stripeProcessor) CreateSession(ctx context.Context, in CreateSessionParams) (*domain.PaymentSession, error) {
	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(in.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.ProductName),
					},
					UnitAmount: stripe.Int64(in.UnitAmount),
				},
				Quantity: stripe.Int64(quantity),
			},
		},
		CustomerEmail: stripe.String(in.CustomerEmail),
		SuccessURL:    stripe.String(in.SuccessURL),
		CancelURL:     stripe.String(in.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata(domain.MetadataName, in.CustomerName)

	session, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}
	return toPaymentSession(session), nil
}

func (p *stripeProcessor) RetrieveSession(ctx context.Context, id string) (*domain.PaymentSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := p.api.CheckoutSessions.Get(id, params)
	if err != nil {
		if isResourceMissing(err) {
			return nil, fmt.Errorf("stripe retrieve checkout session %s: %w: %w", id, ErrSessionNotFound, err)
		}
		return nil, fmt.Errorf("stripe retrieve checkout session %s: %w", id, err)
	}
	return toPaymentSession(session), nil
}

func isResourceMissing(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	return stripeErr.Code == stripe.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == http.StatusNotFound
}

func toPaymentSession(s *stripe.CheckoutSession) *domain.PaymentSession {
	metadata := make(map[string]string, len(s.Metadata))
	for k, v := range s.Metadata {
		metadata[k] = v
	}
	return &domain.PaymentSession{
		ID:            s.ID,
		URL:           s.URL,
		CustomerEmail: s.CustomerEmail,
		Metadata:      metadata,
	}
}
