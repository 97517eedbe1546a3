// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the intake backend: the
// health probe, session lifecycle, chat exchanges, and document upload.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SHARED HTTP CLIENT
// =============================================================================

// PERFORMANCE: Shared HTTP client with connection pooling.
// Reusing connections avoids TLS handshake overhead on every request.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	},
}

// =============================================================================
// ERROR TYPES
// =============================================================================

// Common errors returned by the client.
var (
	// ErrServerUnreachable indicates the backend did not answer at all.
	ErrServerUnreachable = errors.New("backend not reachable")

	// ErrInvalidResponse indicates the backend answered with a body the
	// client could not interpret.
	ErrInvalidResponse = errors.New("invalid server response")

	// ErrRequestTimeout indicates the request exceeded its deadline.
	ErrRequestTimeout = errors.New("request timed out")
)

// ErrorType categorizes client errors for display decisions.
type ErrorType int

const (
	// ErrorTypeConnection - network failure, server down
	ErrorTypeConnection ErrorType = iota
	// ErrorTypeTimeout - request deadline exceeded
	ErrorTypeTimeout
	// ErrorTypeHTTP - non-2xx status with a server-provided detail
	ErrorTypeHTTP
	// ErrorTypeProtocol - response body violated the wire contract
	ErrorTypeProtocol
)

// ClientError provides context about what went wrong.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the text suitable for the transcript and toasts.
// Server-provided detail passes through; everything else maps to the
// stable client-side phrasing.
func (e *ClientError) UserMessage() string {
	return e.Message
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the intake backend.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	requestTimeout time.Duration
	uploadTimeout  time.Duration
	healthTimeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled default, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeouts sets the per-operation deadlines.
func WithTimeouts(request, upload, health time.Duration) Option {
	return func(c *Client) {
		c.requestTimeout = request
		c.uploadTimeout = upload
		c.healthTimeout = health
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     sharedHTTPClient,
		requestTimeout: 60 * time.Second,
		uploadTimeout:  5 * time.Minute,
		healthTimeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// OPERATIONS
// =============================================================================

// CheckHealth probes GET /health. A nil error means the backend is up.
func (c *Client) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return &ClientError{Type: ErrorTypeConnection, Message: "invalid request", Cause: err}
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseError(resp)
	}
	return nil
}

// StartSession begins a session in the given mode ("flow" or "rag") via
// POST /{mode}/start and returns the session ID and greeting.
func (c *Client) StartSession(ctx context.Context, mode string) (*StartSessionResponse, error) {
	body, err := c.postJSON(ctx, "/"+mode+"/start", nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}

	var start StartSessionResponse
	if err := json.Unmarshal(body, &start); err != nil {
		return nil, &ClientError{Type: ErrorTypeProtocol, Message: "Invalid server response", Cause: err}
	}
	if start.SessionID == "" {
		return nil, &ClientError{Type: ErrorTypeProtocol, Message: "Invalid server response", Cause: ErrInvalidResponse}
	}
	return &start, nil
}

// SendMessage posts one user message to POST /{mode}/chat/{session_id}
// and returns the classified turn result.
func (c *Client) SendMessage(ctx context.Context, mode, sessionID, message string) (TurnResult, error) {
	payload, err := json.Marshal(ChatRequest{Message: message})
	if err != nil {
		return TurnResult{}, &ClientError{Type: ErrorTypeProtocol, Message: "invalid request", Cause: err}
	}

	body, err := c.postJSON(ctx, "/"+mode+"/chat/"+sessionID, payload, c.requestTimeout)
	if err != nil {
		return TurnResult{}, err
	}

	result, err := decodeTurn(body)
	if err != nil {
		return TurnResult{}, &ClientError{Type: ErrorTypeProtocol, Message: "Invalid server response", Cause: err}
	}
	return result, nil
}

// postJSON issues a POST with an optional JSON payload and returns the
// raw 2xx body. Non-2xx and transport failures come back as ClientError.
func (c *Client) postJSON(ctx context.Context, path string, payload []byte, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, &ClientError{Type: ErrorTypeConnection, Message: "invalid request", Cause: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.parseError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrorTypeConnection, Message: "failed to read response", Cause: err}
	}
	return body, nil
}

// parseError extracts the {detail} message from a non-2xx response.
// An unparsable body maps to the stable "Invalid server response" text.
func (c *Client) parseError(resp *http.Response) error {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if readErr == nil && len(body) > 0 {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
			return &ClientError{Type: ErrorTypeHTTP, Message: errResp.Detail}
		}
	}
	return &ClientError{
		Type:    ErrorTypeHTTP,
		Message: "Invalid server response",
		Cause:   fmt.Errorf("status %d: %w", resp.StatusCode, ErrInvalidResponse),
	}
}

// classifyTransportError maps transport failures to typed client errors.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClientError{Type: ErrorTypeTimeout, Message: "request timed out", Cause: ErrRequestTimeout}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ClientError{Type: ErrorTypeTimeout, Message: "request timed out", Cause: ErrRequestTimeout}
	}
	return &ClientError{Type: ErrorTypeConnection, Message: "cannot connect to server", Cause: errors.Join(ErrServerUnreachable, err)}
}
