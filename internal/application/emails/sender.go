package emails

import (
	"context"
	"errors"
)

// ErrAuthFailed is returned when the relay rejects the configured credentials.
var ErrAuthFailed = errors.New("mail relay authentication failed")

// Address is a mailbox with an optional display name.
type Address struct {
	Name  string
	Email string
}

// Message is one outbound HTML email.
type Message struct {
	From    Address
	To      []Address
	ReplyTo *Address
	Subject string
	HTML    string
}

// Sender delivers transactional email (contact form, review notices).
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
