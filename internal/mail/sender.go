package mail

import (
	"context"
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/cuencos-cuarzo/boletos/internal/config"
)

// Attachment references a file on disk sent under Filename.
type Attachment struct {
	Filename string
	Path     string
}

// Message is one outgoing plain-text email.
type Message struct {
	From        string
	To          string
	Subject     string
	Text        string
	Attachments []Attachment
}

// Sender delivers email messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type smtpSender struct {
	dialer *gomail.Dialer
}

// NewSMTPSender builds a Sender authenticated with the configured account.
func NewSMTPSender(cfg config.MailConfig) Sender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.From, cfg.Password)
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	return &smtpSender{dialer: dialer}
}

// Send dials the SMTP server and delivers msg. gomail has no context support,
// so ctx is only checked before dialing.
func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(buildMessage(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	for _, att := range msg.Attachments {
		m.Attach(att.Path, gomail.Rename(att.Filename))
	}
	return m
}
