package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/shortuuid/v3"
	"go.uber.org/zap"

	"github.com/cuencos-cuarzo/boletos/internal/config"
	"github.com/cuencos-cuarzo/boletos/internal/domain"
	"github.com/cuencos-cuarzo/boletos/internal/events"
	"github.com/cuencos-cuarzo/boletos/internal/mail"
	"github.com/cuencos-cuarzo/boletos/internal/payment"
	"github.com/cuencos-cuarzo/boletos/internal/render"
	apperrors "github.com/cuencos-cuarzo/boletos/pkg/util"
)

const (
	ticketIDLength     = 9
	attachmentFilename = "boleto.pdf"
	artifactPattern    = "boleto_*.pdf"
)

// TicketService issues tickets for paid checkout sessions.
type TicketService struct {
	processor    payment.Processor
	renderer     render.Renderer
	mailer       mail.Sender
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	event        domain.Event
	mailFrom     string
	tempDir      string
	idPrefix     string
	fallbackName string
	newID        func() string
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Processor  payment.Processor
	Renderer   render.Renderer
	Mailer     mail.Sender
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Event      domain.Event
	Ticket     config.TicketConfig
	MailFrom   string
}

// Issuance describes a ticket that was delivered.
type Issuance struct {
	TicketID  string
	SessionID string
	Email     string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tempDir := deps.Ticket.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	fallback := deps.Ticket.FallbackName
	if fallback == "" {
		fallback = "Asistente"
	}
	return &TicketService{
		processor:    deps.Processor,
		renderer:     deps.Renderer,
		mailer:       deps.Mailer,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
		event:        deps.Event,
		mailFrom:     deps.MailFrom,
		tempDir:      tempDir,
		idPrefix:     deps.Ticket.IDPrefix,
		fallbackName: fallback,
		newID:        randomTicketSuffix,
	}
}

// IssueTicket looks up the paid session, renders a PDF ticket and emails it to the buyer.
// Calling it twice for the same session issues two different tickets.
func (s *TicketService) IssueTicket(ctx context.Context, sessionID string) (res *Issuance, err error) {
	sessionID = strings.TrimSpace(sessionID)
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("ticket issuance panicked",
				zap.String("session_id", sessionID),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			res, err = nil, apperrors.NewInternalError(fmt.Errorf("issue ticket: %v", r))
		}
	}()
	if sessionID == "" {
		return nil, apperrors.NewInvalidInput("session_id is required", map[string]any{"missing": []string{"session_id"}})
	}
	log := s.logger.With(zap.String("session_id", sessionID))

	session, err := s.processor.RetrieveSession(ctx, sessionID)
	if err != nil {
		log.Error("retrieve checkout session failed", zap.Error(err))
		if errors.Is(err, payment.ErrSessionNotFound) {
			return nil, apperrors.NewSessionNotFound(sessionID, err)
		}
		return nil, apperrors.NewPaymentProviderError(err)
	}
	email := strings.TrimSpace(session.CustomerEmail)
	if email == "" {
		log.Error("checkout session has no customer email")
		return nil, apperrors.NewMissingBuyerEmail(sessionID)
	}

	ticket := domain.NewTicket(s.idPrefix+s.newID(), sessionID, session.BuyerName(s.fallbackName), email, s.event)
	log = log.With(zap.String("ticket_id", ticket.ID))

	path, err := s.writeArtifact(ticket)
	if err != nil {
		log.Error("render ticket failed", zap.Error(err))
		return nil, apperrors.NewRenderError(err)
	}
	defer s.removeArtifact(log, path)

	err = s.mailer.Send(ctx, mail.Message{
		From:        s.mailFrom,
		To:          email,
		Subject:     "Tu boleto para el " + s.event.Name,
		Text:        "Gracias por tu compra. Adjuntamos tu boleto en PDF.",
		Attachments: []mail.Attachment{{Filename: attachmentFilename, Path: path}},
	})
	if err != nil {
		log.Error("send ticket email failed", zap.Error(err))
		return nil, apperrors.NewDeliveryError(err)
	}

	log.Info("ticket issued")
	s.publish(ctx, events.New(events.EventTicketIssued, sessionID, events.TicketIssuedPayload{
		TicketID:      ticket.ID,
		CustomerName:  ticket.Name,
		CustomerEmail: ticket.Email,
	}))

	return &Issuance{TicketID: ticket.ID, SessionID: sessionID, Email: email}, nil
}

// writeArtifact renders the ticket into a new request-unique file. It returns only
// after the document is synced and closed; on failure or panic nothing is left on disk.
func (s *TicketService) writeArtifact(ticket domain.Ticket) (string, error) {
	f, err := os.CreateTemp(s.tempDir, artifactPattern)
	if err != nil {
		return "", err
	}
	done := false
	defer func() {
		if !done {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := s.renderer.Render(ticket, f); err != nil {
		return "", err
	}
	if err := f.Sync(); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	done = true
	return f.Name(), nil
}

func (s *TicketService) removeArtifact(log *zap.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("remove ticket file failed", zap.String("path", path), zap.Error(err))
	}
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

// randomTicketSuffix upper-cases the leading digits of a shortuuid. Its alphabet
// has no 0, 1, I or O, so the result always falls in [0-9A-Z].
func randomTicketSuffix() string {
	return strings.ToUpper(shortuuid.New()[:ticketIDLength])
}
