package service

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/cuencos-cuarzo/boletos/internal/domain"
	"github.com/cuencos-cuarzo/boletos/internal/mail"
	"github.com/cuencos-cuarzo/boletos/internal/payment"
)

var testEvent = domain.Event{
	Name:        "Concierto de Cuencos de Cuarzo",
	ProductName: "Boleto - Concierto de Cuencos de Cuarzo",
	DateTime:    "6 de Junio de 2025 – 19:00 h",
	Venue:       "Salón Haciendas del Refugio",
	UnitAmount:  35000,
	Currency:    "mxn",
}

type fakeProcessor struct {
	mu          sync.Mutex
	createCalls []payment.CreateSessionParams
	createErr   error
	sessions    map[string]*domain.PaymentSession
	retrieveErr error
}

func (f *fakeProcessor) CreateSession(ctx context.Context, params payment.CreateSessionParams) (*domain.PaymentSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, params)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.PaymentSession{ID: "cs_test_new", URL: "https://checkout.stripe.com/c/pay/cs_test_new"}, nil
}

func (f *fakeProcessor) RetrieveSession(ctx context.Context, id string) (*domain.PaymentSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, payment.ErrSessionNotFound
	}
	return s, nil
}

// sentMail captures what the mailer saw while the attachment still existed.
type sentMail struct {
	msg         mail.Message
	fileExisted bool
	fileHead    []byte
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	record := sentMail{msg: msg}
	if len(msg.Attachments) > 0 {
		if data, err := os.ReadFile(msg.Attachments[0].Path); err == nil {
			record.fileExisted = true
			if len(data) > 5 {
				data = data[:5]
			}
			record.fileHead = data
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, record)
	return f.err
}

func (f *fakeMailer) Sent() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

type countingRenderer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (r *countingRenderer) Render(ticket domain.Ticket, w io.Writer) error {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.err != nil {
		_, _ = w.Write([]byte("%PDF-partial"))
		return r.err
	}
	_, err := w.Write([]byte("%PDF-1.3 " + ticket.ID))
	return err
}

var errProviderDown = errors.New("stripe: connection reset")
