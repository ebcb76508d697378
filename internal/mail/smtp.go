package mail

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/atelier3d/site-backend/internal/config"
)

// SMTPMailer delivers messages through a plain SMTP transport.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer constructs an SMTP mailer from config.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send builds and delivers one message to the configured contact
// address. The SMTP dial has no cancellation hook, so ctx is only
// checked up front.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(m.cfg.Host) == "" || strings.TrimSpace(m.cfg.FromEmail) == "" {
		return ErrNotConfigured
	}
	if strings.TrimSpace(m.cfg.ContactTo) == "" {
		return fmt.Errorf("mail: no contact address configured")
	}
	if errCtx := ctx.Err(); errCtx != nil {
		return errCtx
	}

	out := gomail.NewMessage()
	out.SetHeader("From", out.FormatAddress(m.cfg.FromEmail, m.cfg.FromName))
	out.SetHeader("To", m.cfg.ContactTo)
	out.SetHeader("Subject", msg.Subject)
	if strings.TrimSpace(msg.ReplyTo) != "" {
		out.SetHeader("Reply-To", msg.ReplyTo)
	}
	if strings.TrimSpace(msg.RefID) != "" {
		out.SetHeader("X-Entity-Ref-ID", msg.RefID)
	}
	out.SetBody("text/html", msg.HTML)

	if att := msg.Attachment; att != nil {
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, errWrite := w.Write(att.Content)
				return errWrite
			}),
		}
		if strings.TrimSpace(att.ContentType) != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		out.Attach(att.Filename, settings...)
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if errSend := dialer.DialAndSend(out); errSend != nil {
		return fmt.Errorf("mail: send: %w", errSend)
	}
	return nil
}
