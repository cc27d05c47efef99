// Package identity wraps the external identity provider. No credentials
// are stored locally; registration, activation and credential checks all
// go through the provider's HTTP API.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"shopcore/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found at identity provider")
)

// Provider is the identity collaborator the auth module depends on.
type Provider interface {
	// Register creates an inactive user and returns its provider id.
	Register(ctx context.Context, email, password, name string) (string, error)

	// Activate enables a user after OTP verification.
	Activate(ctx context.Context, email string) error

	// VerifyCredentials checks email/password and returns an access token.
	VerifyCredentials(ctx context.Context, email, password string) (string, error)

	// ResetPassword replaces the user's password.
	ResetPassword(ctx context.Context, email, newPassword string) error
}

type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProvider(cfg *config.IdentityConfig) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.ClientTimeout},
	}
}

func (p *HTTPProvider) Register(ctx context.Context, email, password, name string) (string, error) {
	var out struct {
		UserID string `json:"user_id"`
	}
	err := p.post(ctx, "/users", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.UserID, nil
}

func (p *HTTPProvider) Activate(ctx context.Context, email string) error {
	return p.post(ctx, "/users/activate", map[string]string{"email": email}, nil)
}

func (p *HTTPProvider) VerifyCredentials(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := p.post(ctx, "/sessions", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

func (p *HTTPProvider) ResetPassword(ctx context.Context, email, newPassword string) error {
	return p.post(ctx, "/passwords/reset", map[string]string{
		"email":    email,
		"password": newPassword,
	}, nil)
}

func (p *HTTPProvider) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return fmt.Errorf("failed to encode identity request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("failed to build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidCredentials
	case http.StatusConflict:
		return ErrEmailTaken
	case http.StatusNotFound:
		return ErrUserNotFound
	default:
		return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode identity response: %w", err)
		}
	}
	return nil
}

var _ Provider = (*HTTPProvider)(nil)
