package domain

import "time"

// IssuanceRecord is the audit entry written after a ticket was emailed.
// Nothing reads it back during issuance.
type IssuanceRecord struct {
	EventID   string
	TicketID  string
	SessionID string
	Name      string
	Email     string
	IssuedAt  time.Time
}
