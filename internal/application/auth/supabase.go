package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SupabaseAuthenticator signs admins in with the Supabase Auth password grant.
type SupabaseAuthenticator struct {
	BaseURL string
	AnonKey string
	Client  *http.Client
}

type supabaseTokenResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (s *SupabaseAuthenticator) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	body, _ := json.Marshal(LoginInput{Email: email, Password: password})
	url := strings.TrimRight(s.BaseURL, "/") + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.AnonKey)
	req.Header.Set("Content-Type", "application/json")
	if s.Client == nil {
		s.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase auth request: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("supabase auth error: status %d body: %s", resp.StatusCode, string(respBody))
	}
	var tok supabaseTokenResponse
	if err := json.Unmarshal(respBody, &tok); err != nil {
		return nil, fmt.Errorf("supabase auth decode: %w", err)
	}
	if tok.User.ID == "" {
		return nil, ErrInvalidCredentials
	}
	return &Account{ID: tok.User.ID, Email: tok.User.Email}, nil
}
