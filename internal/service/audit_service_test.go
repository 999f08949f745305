package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuencos-cuarzo/boletos/internal/domain"
	"github.com/cuencos-cuarzo/boletos/internal/events"
)

type fakeIssuanceRepo struct {
	records []domain.IssuanceRecord
	err     error
}

func (r *fakeIssuanceRepo) Record(ctx context.Context, record domain.IssuanceRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeIssuanceRepo) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.SessionID == sessionID {
			n++
		}
	}
	return n, nil
}

type fakeCounter struct {
	counts map[string]int64
}

func (c *fakeCounter) Increment(ctx context.Context, sessionID string) (int64, error) {
	c.counts[sessionID]++
	return c.counts[sessionID], nil
}

func issuedEvent(ticketID string) events.Event {
	return events.New(events.EventTicketIssued, "cs_test_paid", events.TicketIssuedPayload{
		TicketID:      ticketID,
		CustomerName:  "Ana Ruiz",
		CustomerEmail: "ana@example.com",
	})
}

func TestAuditRecordsIssuanceAndCounts(t *testing.T) {
	d := events.NewInMemoryDispatcher()
	repo := &fakeIssuanceRepo{}
	counter := &fakeCounter{counts: map[string]int64{}}
	NewAuditService(AuditDependencies{Dispatcher: d, Issuances: repo, Counter: counter}).RegisterHandlers()

	require.NoError(t, d.Publish(context.Background(), issuedEvent("BOL-AAAAAAAAA")))
	require.NoError(t, d.Publish(context.Background(), issuedEvent("BOL-BBBBBBBBB")))

	require.Len(t, repo.records, 2)
	assert.Equal(t, "BOL-AAAAAAAAA", repo.records[0].TicketID)
	assert.Equal(t, "cs_test_paid", repo.records[0].SessionID)
	assert.Equal(t, "ana@example.com", repo.records[0].Email)
	assert.NotEmpty(t, repo.records[0].EventID)
	assert.Equal(t, int64(2), counter.counts["cs_test_paid"])
}

func TestAuditFallsBackToRepositoryCount(t *testing.T) {
	repo := &fakeIssuanceRepo{}
	a := NewAuditService(AuditDependencies{Issuances: repo})

	require.NoError(t, a.handleTicketIssued(context.Background(), issuedEvent("BOL-AAAAAAAAA")))
	count, err := a.issuanceCount(context.Background(), "cs_test_paid")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAuditSurfacesSinkErrors(t *testing.T) {
	a := NewAuditService(AuditDependencies{Issuances: &fakeIssuanceRepo{err: errors.New("pg down")}})

	err := a.handleTicketIssued(context.Background(), issuedEvent("BOL-AAAAAAAAA"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pg down")
}

func TestAuditWithoutSinksIsNoop(t *testing.T) {
	a := NewAuditService(AuditDependencies{})
	assert.NoError(t, a.handleTicketIssued(context.Background(), issuedEvent("BOL-AAAAAAAAA")))
	assert.NoError(t, a.handleCheckoutSessionCreated(context.Background(), events.New(events.EventCheckoutSessionCreated, "cs", nil)))
	assert.Error(t, a.handleTicketIssued(context.Background(), events.New(events.EventTicketIssued, "cs", "bad")))
}
