package services

import (
	"context"
	"fmt"
	"time"

	"sftp-cleanup/config"

	"github.com/wneessen/go-mail"
)

const mailTimeout = 30 * time.Second

// Mailer versendet die Alarm-Mail
type Mailer interface {
	Send(ctx context.Context, subject, htmlBody string) error
}

// SMTPMailer liefert Mails über ein SMTP-Relay ein. Ohne explizite TLS-Policy
// wird ohne Anmeldedaten unverschlüsselt eingeliefert, mit Anmeldedaten per
// STARTTLS.
type SMTPMailer struct {
	cfg config.EmailConfig
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, subject, htmlBody string) error {
	msg, err := m.composeMessage(subject, htmlBody)
	if err != nil {
		return err
	}

	client, err := m.newClient()
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("fehler beim Versand über %s: %w", m.cfg.Server, err)
	}
	return nil
}

// composeMessage baut eine HTML-Mail mit einem Absender und einem Empfänger
func (m *SMTPMailer) composeMessage(subject, htmlBody string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Sender); err != nil {
		return nil, fmt.Errorf("ungültiger Absender %q: %w", m.cfg.Sender, err)
	}
	if err := msg.To(m.cfg.Receiver); err != nil {
		return nil, fmt.Errorf("ungültiger Empfänger %q: %w", m.cfg.Receiver, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	return msg, nil
}

func (m *SMTPMailer) clientOptions() ([]mail.Option, error) {
	opts := []mail.Option{
		mail.WithPort(m.cfg.GetPort()),
		mail.WithTimeout(mailTimeout),
	}

	switch m.cfg.GetTLSPolicy() {
	case config.TLSNone:
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	case config.TLSOpportunistic:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	case config.TLSStartTLS:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	case config.TLSImplicit:
		opts = append(opts, mail.WithSSL())
	default:
		return nil, fmt.Errorf("ungültige TLS-Policy: %s", m.cfg.TLS)
	}

	if m.cfg.HasAuth() {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password))
	}

	return opts, nil
}

func (m *SMTPMailer) newClient() (*mail.Client, error) {
	opts, err := m.clientOptions()
	if err != nil {
		return nil, err
	}

	client, err := mail.NewClient(m.cfg.Server, opts...)
	if err != nil {
		return nil, fmt.Errorf("SMTP-Client-Erstellung fehlgeschlagen: %w", err)
	}
	return client, nil
}
