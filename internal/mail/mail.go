// Package mail sends transactional email for the contact form and the
// generic send endpoint.
package mail

import (
	"context"
	"errors"
)

// ErrNotConfigured indicates no SMTP transport is configured.
var ErrNotConfigured = errors.New("mail: smtp not configured")

// Attachment is a decoded file attached to an outgoing message.
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// Message is one outgoing email.
type Message struct {
	Subject    string
	HTML       string
	ReplyTo    string
	RefID      string // becomes the X-Entity-Ref-ID header
	Attachment *Attachment
}

// Mailer delivers messages to the configured contact address.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
