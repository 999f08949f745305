package payment

import (
	"context"
	"errors"

	"github.com/cuencos-cuarzo/boletos/internal/domain"
)

// ErrSessionNotFound is returned when the processor has no record of a session id.
var ErrSessionNotFound = errors.New("payment session not found")

// CheckoutSessionPlaceholder is substituted by the processor with the real session id.
const CheckoutSessionPlaceholder = "{CHECKOUT_SESSION_ID}"

// CreateSessionParams describes a single-item checkout.
type CreateSessionParams struct {
	CustomerEmail string
	CustomerName  string
	ProductName   string
	UnitAmount    int64
	Currency      string
	Quantity      int64
	SuccessURL    string
	CancelURL     string
}

// Processor is the external payment processor consumed by the checkout workflows.
type Processor interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*domain.PaymentSession, error)
	RetrieveSession(ctx context.Context, id string) (*domain.PaymentSession, error)
}
