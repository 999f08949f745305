package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCheckoutSessionCreated EventType = "checkout_session_created"
	EventTicketIssued           EventType = "ticket_issued"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, sessionID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// CheckoutSessionCreatedPayload payload.
type CheckoutSessionCreatedPayload struct {
	CustomerEmail string `json:"customer_email"`
	UnitAmount    int64  `json:"unit_amount"`
	Currency      string `json:"currency"`
}

// TicketIssuedPayload payload.
type TicketIssuedPayload struct {
	TicketID      string `json:"ticket_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}
