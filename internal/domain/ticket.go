package domain

// Event describes the single event tickets are sold for.
type Event struct {
	Name        string
	ProductName string
	DateTime    string
	Venue       string
	UnitAmount  int64
	Currency    string
}

// Ticket is the proof of purchase rendered into the PDF.
// It only lives for the duration of one issuance.
type Ticket struct {
	ID            string
	SessionID     string
	Name          string
	Email         string
	EventName     string
	EventDateTime string
	Venue         string
}

// NewTicket builds a ticket for the given event and buyer.
func NewTicket(id, sessionID, name, email string, event Event) Ticket {
	return Ticket{
		ID:            id,
		SessionID:     sessionID,
		Name:          name,
		Email:         email,
		EventName:     event.Name,
		EventDateTime: event.DateTime,
		Venue:         event.Venue,
	}
}
