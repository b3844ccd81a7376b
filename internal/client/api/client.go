// Package api implements the REST client used by labctl to talk to the
// account service. It keeps the session token obtained from Login and sends
// it as a bearer credential on protected calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// User is the client-side view of an account as the server reports it.
type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	AccountEnabled bool      `json:"accountEnabled"`
	UseBiometrics  bool      `json:"useBiometrics"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
	user    *User
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// CurrentUser returns the account Login resolved, or nil before Login.
func (c *Client) CurrentUser() *User {
	return c.user
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode >= 400 || env.Status == "error" {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}

// Login authenticates with an email and password and stores the session
// token for subsequent calls. The password slice is not retained.
func (c *Client) Login(ctx context.Context, email string, password []byte) error {
	body := map[string]string{"email": email, "password": string(password)}

	var s session
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &s); err != nil {
		return err
	}

	c.token = s.Token
	c.user = &s.User
	return nil
}

// Logout revokes the current session token on the server and forgets it.
func (c *Client) Logout(ctx context.Context) error {
	if c.token == "" {
		return ErrNotLoggedIn
	}
	if err := c.do(ctx, http.MethodDelete, "/users/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	c.user = nil
	return nil
}

// ListUsers returns every account. Requires an admin session.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	if c.token == "" {
		return nil, ErrNotLoggedIn
	}
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetAccountEnabled flips the enablement flag on the target account.
// Requires an admin session.
func (c *Client) SetAccountEnabled(ctx context.Context, userID string, enabled bool) error {
	if c.token == "" {
		return ErrNotLoggedIn
	}
	body := map[string]bool{"enabled": enabled}
	return c.do(ctx, http.MethodPatch, "/users/"+userID+"/enabled", body, nil)
}
