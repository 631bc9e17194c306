// Package api is the HTTP client for the auth endpoints.
//
// Contract:
//   - Signup/Login return the issued token on success.
//   - Non-2xx responses surface as *StatusError carrying the server's
//     message, or a generic status-coded message when the body is unusable.
//   - Transport failures wrap ErrNetwork; there is no automatic retry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNetwork marks a client-side transport failure (offline, DNS, timeout).
var ErrNetwork = errors.New("network error")

// StatusError is a non-2xx response translated into an error.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string { return e.Message }

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type SignupRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity is the caller's identity as reported by /api/auth/me.
type Identity struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// Signup registers a new account and returns the issued token.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	return c.postForToken(ctx, "/api/auth/signup", req)
}

// Login authenticates an existing account and returns a fresh token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.postForToken(ctx, "/api/auth/login", loginRequest{Email: email, Password: password})
}

// Me fetches the identity bound to token.
func (c *Client) Me(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}
	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &id, nil
}

func (c *Client) postForToken(ctx context.Context, path string, payload any) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		Token   string `json:"token"`
		Message string `json:"message"`
	}
	// body may be empty or not JSON; the status code still decides
	_ = json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && body.Token != "" {
		return body.Token, nil
	}
	if body.Message != "" {
		return "", &StatusError{StatusCode: resp.StatusCode, Message: body.Message}
	}
	return "", &StatusError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
	}
}

func statusError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Message == "" {
		body.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: body.Message}
}
