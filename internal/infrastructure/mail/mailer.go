// Package mail sends the transactional emails of the system.
package mail

import (
	"context"
	"fmt"

	"sk-barangay-service/internal/infrastructure/config"
	Logger "sk-barangay-service/pkg/logger"

	gomail "github.com/wneessen/go-mail"
)

// Mailer delivers one HTML message
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer relays through an SMTP server
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewMailer returns an SMTP mailer when MAIL_HOST is set, otherwise a log-only mailer
func NewMailer(cfg *config.Config) Mailer {
	if !cfg.MailEnabled() {
		Logger.Warning("MAIL_HOST not set, emails will only be logged")
		return LogMailer{}
	}
	return &SMTPMailer{
		Host:     cfg.MailHost,
		Port:     cfg.MailPort,
		Username: cfg.MailUser,
		Password: cfg.MailPassword,
		From:     cfg.MailFrom,
	}
}

// Send builds the message and delivers it in one SMTP session
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	opts := []gomail.Option{
		gomail.WithPort(m.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if m.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.Username),
			gomail.WithPassword(m.Password),
		)
	}

	client, err := gomail.NewClient(m.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// LogMailer writes messages to the log instead of sending them
type LogMailer struct{}

// Send logs recipient and subject
func (LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	Logger.Info("mail to=%s subject=%q (not sent, no SMTP relay configured)", to, subject)
	Logger.Debug("mail body: %s", htmlBody)
	return nil
}
