package contact

import (
	"context"
	"errors"
	"fmt"

	"portfolio-backend/internal/application/emails"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/pkg/validation"
)

var (
	ErrMissingFields = errors.New("Missing required fields")
	ErrInvalidEmail  = errors.New("Invalid email address")
	ErrAuthFailed    = errors.New("Authentication failed. Check the mail relay API key and secret key.")
	ErrSendFailed    = errors.New("Error sending message.")
)

// Form is a contact form submission.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Service forwards contact form submissions to the site owner's inbox.
type Service struct {
	Mailer   emails.Sender
	MailFrom string
	SiteName string
}

// Submit sends one HTML email from "<name>" <MailFrom> to MailFrom, with the
// visitor as reply-to.
func (s *Service) Submit(ctx context.Context, f Form) error {
	if len(validation.MissingFields("name", f.Name, "email", f.Email, "subject", f.Subject, "message", f.Message)) > 0 {
		return &domain.ValidationError{Message: ErrMissingFields.Error()}
	}
	if !validation.IsValidEmail(f.Email) {
		return &domain.ValidationError{Message: ErrInvalidEmail.Error()}
	}
	msg := emails.Message{
		From:    emails.Address{Name: f.Name, Email: s.MailFrom},
		To:      []emails.Address{{Email: s.MailFrom}},
		ReplyTo: &emails.Address{Email: f.Email},
		Subject: f.Subject,
		HTML:    emails.EmailLayout("New Contact Form Submission", s.SiteName, emails.ContactContent(f.Name, f.Email, f.Subject, f.Message)),
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		if errors.Is(err, emails.ErrAuthFailed) {
			return fmt.Errorf("%w: %v", ErrAuthFailed, err)
		}
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}
