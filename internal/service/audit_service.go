package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cuencos-cuarzo/boletos/internal/domain"
	"github.com/cuencos-cuarzo/boletos/internal/events"
	"github.com/cuencos-cuarzo/boletos/internal/repository"
)

// AuditService records checkout and issuance events. It never affects the
// response of the request that emitted the event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	issuances  repository.IssuanceRepository
	counter    repository.IssuanceCounter
}

// AuditDependencies bundles the optional audit sinks. Nil sinks are skipped.
type AuditDependencies struct {
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Issuances  repository.IssuanceRepository
	Counter    repository.IssuanceCounter
}

// NewAuditService creates the service.
func NewAuditService(deps AuditDependencies) *AuditService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: deps.Dispatcher,
		logger:     logger,
		issuances:  deps.Issuances,
		counter:    deps.Counter,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventCheckoutSessionCreated, a.handleCheckoutSessionCreated)
	a.dispatcher.Subscribe(events.EventTicketIssued, a.handleTicketIssued)
}

func (a *AuditService) handleCheckoutSessionCreated(ctx context.Context, event events.Event) error {
	a.logger.Info("CheckoutSessionCreated", zap.String("session_id", event.SessionID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleTicketIssued(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketIssuedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	a.logger.Info("TicketIssued", zap.String("session_id", event.SessionID), zap.String("ticket_id", payload.TicketID))

	if a.issuances != nil {
		err := a.issuances.Record(ctx, domain.IssuanceRecord{
			EventID:   event.ID,
			TicketID:  payload.TicketID,
			SessionID: event.SessionID,
			Name:      payload.CustomerName,
			Email:     payload.CustomerEmail,
			IssuedAt:  event.Timestamp,
		})
		if err != nil {
			return fmt.Errorf("record issuance: %w", err)
		}
	}

	count, err := a.issuanceCount(ctx, event.SessionID)
	if err != nil {
		return fmt.Errorf("count issuances: %w", err)
	}
	if count > 1 {
		a.logger.Warn("repeat issuance for session",
			zap.String("session_id", event.SessionID),
			zap.String("ticket_id", payload.TicketID),
			zap.Int64("issued_count", count))
	}
	return nil
}

// issuanceCount prefers the Redis counter and falls back to the audit table.
func (a *AuditService) issuanceCount(ctx context.Context, sessionID string) (int64, error) {
	switch {
	case a.counter != nil:
		return a.counter.Increment(ctx, sessionID)
	case a.issuances != nil:
		return a.issuances.CountBySession(ctx, sessionID)
	default:
		return 0, nil
	}
}
