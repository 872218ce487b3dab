// Package mailer renders and sends transactional email for the contact
// and booking forms via the configured SMTP relay.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/surfaceplanner/surfaced/internal/config"
)

// Message is a rendered email ready to send
type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers a message. A single synchronous attempt: a relay
// outage is surfaced to the caller, not queued.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer sends mail over SMTP using go-mail
type Mailer struct {
	cfg    config.SMTPConfig
	client *mail.Client
	logger zerolog.Logger
}

// New creates a mailer from SMTP configuration
func New(cfg config.SMTPConfig, logger zerolog.Logger) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &Mailer{
		cfg:    cfg,
		client: client,
		logger: logger,
	}, nil
}

// Send delivers the message through the SMTP relay
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	mm := mail.NewMsg()
	if err := mm.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}

	to := msg.To
	if to == "" {
		to = m.cfg.To
	}
	if err := mm.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	if msg.ReplyTo != "" {
		if err := mm.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to address: %w", err)
		}
	}

	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info().
		Str("to", to).
		Str("subject", msg.Subject).
		Msg("Email sent")

	return nil
}

// DefaultRecipient returns the configured form-submission inbox
func (m *Mailer) DefaultRecipient() string {
	return m.cfg.To
}

// sanitizeHeader strips CR/LF so user input cannot inject headers
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
