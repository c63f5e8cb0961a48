package emails

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"strings"

	"github.com/wneessen/go-mail"
)

// SMTPClient sends mail through an authenticated SMTP relay (Mailjet by default).
type SMTPClient struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (c *SMTPClient) build(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(msg.From.Name, msg.From.Email); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	for _, to := range msg.To {
		if err := m.AddToFormat(to.Name, to.Email); err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
	}
	if msg.ReplyTo != nil {
		if err := m.ReplyToFormat(msg.ReplyTo.Name, msg.ReplyTo.Email); err != nil {
			return nil, fmt.Errorf("reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}

// Send delivers msg over STARTTLS. Credential rejections are reported as ErrAuthFailed.
func (c *SMTPClient) Send(ctx context.Context, msg Message) error {
	m, err := c.build(msg)
	if err != nil {
		return err
	}
	client, err := mail.NewClient(c.Host,
		mail.WithPort(c.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.Username),
		mail.WithPassword(c.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		if isAuthError(err) {
			return fmt.Errorf("%w: %v", ErrAuthFailed, err)
		}
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func isAuthError(err error) bool {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) && tpErr.Code == 535 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "535") || strings.Contains(s, "authentication failed") || strings.Contains(s, "smtp auth")
}
