// Package emailstest provides a recording Sender for tests.
package emailstest

import (
	"context"
	"sync"

	"portfolio-backend/internal/application/emails"
)

// Sender records messages instead of sending them. Err, when set, is returned from Send.
type Sender struct {
	mu   sync.Mutex
	Sent []emails.Message
	Err  error
}

func (s *Sender) Send(ctx context.Context, msg emails.Message) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, msg)
	return nil
}

// Messages returns a copy of the recorded messages.
func (s *Sender) Messages() []emails.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]emails.Message(nil), s.Sent...)
}
