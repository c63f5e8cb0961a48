package contact

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"portfolio-backend/internal/application/emails"
	"portfolio-backend/internal/application/emails/emailstest"
	"portfolio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContactTest() (*Service, *emailstest.Sender) {
	mailer := &emailstest.Sender{}
	return &Service{Mailer: mailer, MailFrom: "owner@site.test", SiteName: "Portfolio"}, mailer
}

func TestSubmit_SendsOneEmail(t *testing.T) {
	svc, mailer := setupContactTest()
	err := svc.Submit(context.Background(), Form{Name: "Jane", Email: "jane@x.com", Subject: "Hi", Message: "Hello"})
	require.NoError(t, err)

	sent := mailer.Messages()
	require.Len(t, sent, 1)
	m := sent[0]
	assert.Equal(t, emails.Address{Name: "Jane", Email: "owner@site.test"}, m.From)
	assert.Equal(t, []emails.Address{{Email: "owner@site.test"}}, m.To)
	require.NotNil(t, m.ReplyTo)
	assert.Equal(t, "jane@x.com", m.ReplyTo.Email)
	assert.Equal(t, "Hi", m.Subject)
	assert.Contains(t, m.HTML, "Hello")
}

func TestSubmit_MissingFields(t *testing.T) {
	svc, mailer := setupContactTest()
	err := svc.Submit(context.Background(), Form{Name: "Jane", Email: "jane@x.com", Message: "Hello"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Missing required fields", verr.Message)
	assert.Empty(t, mailer.Messages())
}

func TestSubmit_InvalidEmail(t *testing.T) {
	svc, _ := setupContactTest()
	err := svc.Submit(context.Background(), Form{Name: "Jane", Email: "jane", Subject: "Hi", Message: "Hello"})
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSubmit_RelayFailures(t *testing.T) {
	svc, mailer := setupContactTest()
	form := Form{Name: "Jane", Email: "jane@x.com", Subject: "Hi", Message: "Hello"}

	mailer.Err = fmt.Errorf("%w: 535", emails.ErrAuthFailed)
	assert.ErrorIs(t, svc.Submit(context.Background(), form), ErrAuthFailed)

	mailer.Err = errors.New("connection reset")
	assert.ErrorIs(t, svc.Submit(context.Background(), form), ErrSendFailed)
}
