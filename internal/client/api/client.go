// Package api is the HTTP client for the payment tracker server.
//
// Every request carries the stored bearer token when one exists. Server
// errors come back as *domain.Error values classified by status code, so
// callers can test them with errors.Is against the domain sentinels and
// show their message directly. Failed requests are never retried.
package api

import (
	"bytes"         // Request bodies
	"context"       // Request scoping
	"encoding/json" // JSON encoding/decoding
	"errors"        // Sentinel errors
	"fmt"           // Error wrapping
	"io"            // Body readers
	"net/http"      // HTTP transport
	"strconv"       // Payment IDs in paths
	"strings"       // Base URL cleanup
	"time"          // Timeouts

	"payment_tracker/internal/domain" // Shared payment types and error kinds

	"github.com/shopspring/decimal" // Exact amounts
	"github.com/sirupsen/logrus"    // Structured logging
)

var (
	// ErrNetwork wraps transport failures: the server could not be reached
	// or its reply could not be read.
	ErrNetwork = errors.New("network error")
	// ErrServer classifies responses that map to no domain sentinel.
	ErrServer = errors.New("server error")
)

// TokenStore is where the client keeps the bearer token.
type TokenStore interface {
	Set(ctx context.Context, token string) error
	Get(ctx context.Context) (string, error)
	Delete(ctx context.Context) error
}

// Account is the public part of a user account.
type Account struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

// PaymentInput is the body of a create-payment request.
type PaymentInput struct {
	Amount   decimal.Decimal `json:"amount"`
	Receiver string          `json:"receiver"`
	Status   string          `json:"status"`
	Method   string          `json:"method"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client talks to one server.
type Client struct {
	baseURL        string                    // Server root without trailing slash
	http           *http.Client              // Transport
	tokens         TokenStore                // Bearer token persistence
	onUnauthorized func(ctx context.Context) // Runs after a rejected token is dropped
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// OnUnauthorized registers fn to run after an authenticated request is
// rejected with 401. The stored token is already deleted when fn runs.
func OnUnauthorized(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New returns a client for the server at baseURL.
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second}, // Default request bound
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, username, password string) (Account, error) {
	var acc Account
	err := c.do(ctx, http.MethodPost, "/auth/register", credentials{username, password}, &acc)
	return acc, err
}

// Login exchanges credentials for a token and persists it.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", credentials{username, password}, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", ErrServer)
	}
	if err := c.tokens.Set(ctx, resp.AccessToken); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Logout forgets the stored token. The server keeps no session to end.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.tokens.Delete(ctx); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Profile returns the logged-in account.
func (c *Client) Profile(ctx context.Context) (Account, error) {
	var acc Account
	err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &acc)
	return acc, err
}

// CreatePayment records a payment.
func (c *Client) CreatePayment(ctx context.Context, in PaymentInput) (domain.Payment, error) {
	var p domain.Payment
	err := c.do(ctx, http.MethodPost, "/payments", in, &p)
	return p, err
}

// ListPayments returns every payment, newest first.
func (c *Client) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	var ps []domain.Payment
	err := c.do(ctx, http.MethodGet, "/payments", nil, &ps)
	return ps, err
}

// GetPayment returns one payment.
func (c *Client) GetPayment(ctx context.Context, id uint) (domain.Payment, error) {
	var p domain.Payment
	err := c.do(ctx, http.MethodGet, "/payments/"+strconv.FormatUint(uint64(id), 10), nil, &p)
	return p, err
}

// Stats returns the dashboard aggregate.
func (c *Client) Stats(ctx context.Context) (domain.PaymentStats, error) {
	var st domain.PaymentStats
	err := c.do(ctx, http.MethodGet, "/payments/stats", nil, &st)
	return st, err
}

// do sends one JSON request and decodes the reply into out
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json") // Server always answers JSON
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Get(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Error reading token, sending request without it")
		token = "" // Public routes still work
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close() // Always release the connection

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized && token != "" { // Only a sent token can expire
			c.expire(ctx)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrNetwork, method, path, err)
	}
	return nil
}

// expire drops a token the server no longer accepts.
func (c *Client) expire(ctx context.Context) {
	if err := c.tokens.Delete(ctx); err != nil {
		logrus.WithError(err).Warn("Error deleting rejected token")
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}

// decodeError turns an error response into a classified domain error
func decodeError(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body) // Non-JSON bodies fall through
	msg := body.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode) // Fallback message
	}
	return domain.Errorf(kindFor(resp.StatusCode), "%s", msg)
}

// kindFor maps an HTTP status to its domain sentinel
func kindFor(status int) error {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrValidation
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	}
	return ErrServer
}
