package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoContact   `json:"sender"`
	To          []BrevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	ReplyTo     *BrevoContact  `json:"replyTo,omitempty"`
}

type BrevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// BrevoClient sends emails via the Brevo HTTP API. Used when MAIL_PROVIDER=brevo.
type BrevoClient struct {
	APIKey   string
	Endpoint string // defaults to the public Brevo API
	Client   *http.Client
}

func (c *BrevoClient) Send(ctx context.Context, msg Message) error {
	body := BrevoSendRequest{
		Sender:      BrevoContact{Email: msg.From.Email, Name: msg.From.Name},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}
	for _, to := range msg.To {
		body.To = append(body.To, BrevoContact{Email: to.Email, Name: to.Name})
	}
	if msg.ReplyTo != nil {
		body.ReplyTo = &BrevoContact{Email: msg.ReplyTo.Email, Name: msg.ReplyTo.Name}
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = brevoAPI
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: brevo status %d", ErrAuthFailed, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}
