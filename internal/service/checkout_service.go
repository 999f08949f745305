package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/cuencos-cuarzo/boletos/internal/domain"
	"github.com/cuencos-cuarzo/boletos/internal/events"
	"github.com/cuencos-cuarzo/boletos/internal/payment"
	apperrors "github.com/cuencos-cuarzo/boletos/pkg/util"
)

// CheckoutService opens payment sessions for buyers.
type CheckoutService struct {
	processor  payment.Processor
	dispatcher events.Dispatcher
	logger     *zap.Logger
	event      domain.Event
	domain     string
}

// CheckoutDependencies bundles collaborators for the checkout service.
type CheckoutDependencies struct {
	Processor  payment.Processor
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Event      domain.Event
	// Domain is the public base URL used for the processor redirects.
	Domain string
}

// CheckoutResult is returned to the caller after a session was opened.
type CheckoutResult struct {
	SessionID   string
	RedirectURL string
}

// NewCheckoutService constructs the service.
func NewCheckoutService(deps CheckoutDependencies) *CheckoutService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		processor:  deps.Processor,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		event:      deps.Event,
		domain:     deps.Domain,
	}
}

// CreateCheckoutSession asks the processor for a single-item session and returns its redirect URL.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, intent domain.PurchaseIntent) (*CheckoutResult, error) {
	if missing := intent.MissingFields(); len(missing) > 0 {
		return nil, apperrors.NewInvalidInput("name and email are required", map[string]any{"missing": missing})
	}
	intent = intent.Normalize()

	session, err := s.processor.CreateSession(ctx, payment.CreateSessionParams{
		CustomerEmail: intent.Email,
		CustomerName:  intent.Name,
		ProductName:   s.event.ProductName,
		UnitAmount:    s.event.UnitAmount,
		Currency:      s.event.Currency,
		Quantity:      1,
		SuccessURL:    s.domain + "/success.html?session_id=" + payment.CheckoutSessionPlaceholder,
		CancelURL:     s.domain + "/cancel.html",
	})
	if err != nil {
		s.logger.Error("create checkout session failed",
			zap.String("customer_email", intent.Email),
			zap.Error(err))
		return nil, apperrors.NewPaymentProviderError(err)
	}

	s.logger.Info("checkout session created", zap.String("session_id", session.ID))
	s.publish(ctx, events.New(events.EventCheckoutSessionCreated, session.ID, events.CheckoutSessionCreatedPayload{
		CustomerEmail: intent.Email,
		UnitAmount:    s.event.UnitAmount,
		Currency:      s.event.Currency,
	}))

	return &CheckoutResult{SessionID: session.ID, RedirectURL: session.URL}, nil
}

func (s *CheckoutService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
