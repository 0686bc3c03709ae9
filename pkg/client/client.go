// Copyright (c) 2026 Pulseboard. All rights reserved.

/*
Package client is the Go session manager for the Pulseboard API.

# Architecture

A [Client] holds the signed-in state (session token plus the account it
identifies), attaches the bearer token to every authorized call, and keeps
the token in a [TokenStore] so a later process can restore the session. The
zero state is anonymous; Login, Register, and Restore transition into the
authenticated state, Logout transitions out of it.

# Concurrency

Client is safe for concurrent use. Session mutations take a write lock; if
two goroutines race Login and Logout, the last writer wins and the stored
token reflects that final call.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrNotAuthenticated is returned by calls that require a session when the
// client has none, and by Restore when no valid token could be recovered.
var ErrNotAuthenticated = errors.New("client: not authenticated")

// User is the account profile as the API serializes it.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// APIError is a structured error response from the server.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (apiError *APIError) Error() string {
	return fmt.Sprintf("client: api error %d (%s): %s",
		apiError.StatusCode, apiError.Code, apiError.Message)
}

// TokenStore persists the session token between processes.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// Client manages an authenticated session against a Pulseboard server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokenStore TokenStore

	mu    sync.RWMutex
	token string
	user  *User
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.httpClient = httpClient }
}

/*
New creates a session manager for the server at baseURL.

Parameters:
  - baseURL: string (e.g. "http://localhost:3000")
  - tokenStore: TokenStore (May be nil; the session then lives only in memory)
  - options: ...Option

Returns:
  - *Client: An anonymous client; call Login, Register, or Restore
*/
func New(baseURL string, tokenStore TokenStore, options ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokenStore: tokenStore,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// # Session Lifecycle

/*
Login authenticates with the given credentials and establishes a session.

Description: On success the token and account are cached and the token is
persisted to the store, replacing whatever session was active before.

Returns:
  - error: *APIError (401 on bad credentials) or transport failures
*/
func (client *Client) Login(ctx context.Context, username, password string) error {
	var response struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	err := client.doJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, false, &response)
	if err != nil {
		return err
	}

	client.setSession(response.Token, response.User)
	return nil
}

// RegisterInput holds the fields for enrolling a new account.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

/*
Register enrolls a new account and establishes a session for it.

Description: The register endpoint returns only the token; the profile is
fetched with a follow-up authorized call so the cached user is complete.
*/
func (client *Client) Register(ctx context.Context, input RegisterInput) error {
	var response struct {
		Token string `json:"token"`
	}
	if err := client.doJSON(ctx, http.MethodPost, "/api/auth/register", input, false, &response); err != nil {
		return err
	}

	client.setSession(response.Token, nil)

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	client.mu.Lock()
	client.user = user
	client.mu.Unlock()
	return nil
}

// Logout drops the session and clears the persisted token. It never fails
// on the server side because tokens are stateless; only store errors surface.
func (client *Client) Logout() error {
	client.mu.Lock()
	client.token = ""
	client.user = nil
	client.mu.Unlock()

	if client.tokenStore == nil {
		return nil
	}
	return client.tokenStore.Clear()
}

/*
Restore recovers a previous session from the token store.

Description: The stored token is probed against the identity endpoint; an
expired or revoked-by-deletion token is discarded from the store, and the
client stays anonymous.

Returns:
  - error: ErrNotAuthenticated when no usable token exists, otherwise
    transport failures
*/
func (client *Client) Restore(ctx context.Context) error {
	if client.tokenStore == nil {
		return ErrNotAuthenticated
	}

	token, err := client.tokenStore.Load()
	if err != nil || token == "" {
		return ErrNotAuthenticated
	}

	client.mu.Lock()
	client.token = token
	client.mu.Unlock()

	user, err := client.CurrentUser(ctx)
	if err != nil {
		var apiError *APIError
		if errors.As(err, &apiError) &&
			(apiError.StatusCode == http.StatusUnauthorized || apiError.StatusCode == http.StatusNotFound) {
			_ = client.Logout()
			return ErrNotAuthenticated
		}
		return err
	}

	client.mu.Lock()
	client.user = user
	client.mu.Unlock()
	return nil
}

// # Authorized Calls

// CurrentUser fetches the account behind the active session token.
func (client *Client) CurrentUser(ctx context.Context) (*User, error) {
	if client.Token() == "" {
		return nil, ErrNotAuthenticated
	}

	var user User
	if err := client.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Health fetches the server health report. No session required.
func (client *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var status map[string]interface{}
	if err := client.doJSON(ctx, http.MethodGet, "/health", nil, false, &status); err != nil {
		return nil, err
	}
	return status, nil
}

// # Accessors

// Token returns the active session token, or "" when anonymous.
func (client *Client) Token() string {
	client.mu.RLock()
	defer client.mu.RUnlock()
	return client.token
}

// User returns the cached account of the active session, or nil.
func (client *Client) User() *User {
	client.mu.RLock()
	defer client.mu.RUnlock()
	if client.user == nil {
		return nil
	}
	copied := *client.user
	return &copied
}

// IsAuthenticated reports whether a session token is held.
func (client *Client) IsAuthenticated() bool {
	return client.Token() != ""
}

// # Internals

func (client *Client) setSession(token string, user *User) {
	client.mu.Lock()
	client.token = token
	client.user = user
	client.mu.Unlock()

	if client.tokenStore != nil {
		// Persist best-effort: an unwritable store degrades to an in-memory
		// session rather than failing the login.
		_ = client.tokenStore.Save(token)
	}
}

// doJSON performs one API round trip with optional bearer authorization.
func (client *Client) doJSON(ctx context.Context, method, path string, body interface{}, authorized bool, target interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if authorized {
		request.Header.Set("Authorization", "Bearer "+client.Token())
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		apiError := &APIError{StatusCode: response.StatusCode}
		if decodeErr := json.NewDecoder(response.Body).Decode(apiError); decodeErr != nil {
			apiError.Message = http.StatusText(response.StatusCode)
		}
		return apiError
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}
