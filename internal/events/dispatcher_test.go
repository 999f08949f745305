package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRunsAllHandlersAndJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventTicketIssued, func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("postgres down")
	})
	d.Subscribe(EventTicketIssued, func(ctx context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventCheckoutSessionCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), New(EventTicketIssued, "cs_test_abc", TicketIssuedPayload{TicketID: "BOL-1"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres down")
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), New(EventTicketIssued, "cs", nil)))
}

func TestNewStampsIDAndTime(t *testing.T) {
	a := New(EventTicketIssued, "cs_1", nil)
	b := New(EventTicketIssued, "cs_1", nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
	assert.Equal(t, "cs_1", a.SessionID)
}
