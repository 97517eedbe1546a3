// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, WithTimeouts(5*time.Second, 5*time.Second, 2*time.Second))
	return client, srv
}

func TestCheckHealthOK(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	err := client.CheckHealth(context.Background())
	assert.NoError(t, err)
}

func TestCheckHealthServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, WithTimeouts(time.Second, time.Second, time.Second))
	err := client.CheckHealth(context.Background())
	require.Error(t, err)

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrorTypeConnection, ce.Type)
	assert.ErrorIs(t, err, ErrServerUnreachable)
}

func TestStartSession(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flow/start", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"session_id":"abc123","message":"Welcome! What is your name?"}`))
	})

	start, err := client.StartSession(context.Background(), "flow")
	require.NoError(t, err)
	assert.Equal(t, "abc123", start.SessionID)
	assert.Equal(t, "Welcome! What is your name?", start.Message)
}

func TestStartSessionMissingSessionID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"hi"}`))
	})

	_, err := client.StartSession(context.Background(), "rag")
	require.Error(t, err)

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrorTypeProtocol, ce.Type)
	assert.Equal(t, "Invalid server response", ce.Message)
}

func TestSendMessagePlain(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rag/chat/s1", r.URL.Path)
		w.Write([]byte(`{"message":"The document says X."}`))
	})

	result, err := client.SendMessage(context.Background(), "rag", "s1", "what does it say?")
	require.NoError(t, err)
	assert.Equal(t, TurnPlain, result.Kind)
	assert.Equal(t, "The document says X.", result.Message)
	assert.Nil(t, result.Summary)
}

func TestSendMessageValidationRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Please provide a valid email.","metadata":{"validation_error":"That doesn't look like an email address."}}`))
	})

	result, err := client.SendMessage(context.Background(), "flow", "s1", "not-an-email")
	require.NoError(t, err)
	assert.Equal(t, TurnValidationRejected, result.Kind)
	// The rejection text comes from validation_error, not the message field
	assert.Equal(t, "That doesn't look like an email address.", result.Message)
}

// A reply flagged validation_error must never surface as a summary,
// even if the server also claims completion.
func TestSendMessageValidationTakesPrecedence(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"bad","metadata":{"validation_error":"try again","is_complete":true,"summary":{"name":"x"}}}`))
	})

	result, err := client.SendMessage(context.Background(), "flow", "s1", "x")
	require.NoError(t, err)
	assert.Equal(t, TurnValidationRejected, result.Kind)
	assert.Equal(t, "try again", result.Message)
	assert.Nil(t, result.Summary)
}

func TestSendMessageCompleted(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"All done!","metadata":{"is_complete":true,"summary":{"name":"Ada","email":"ada@example.com","session_id":"s1"}}}`))
	})

	result, err := client.SendMessage(context.Background(), "flow", "s1", "yes")
	require.NoError(t, err)
	assert.Equal(t, TurnCompleted, result.Kind)
	assert.Equal(t, "All done!", result.Message)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "Ada", result.Summary["name"])
}

func TestSendMessageUnparsableBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := client.SendMessage(context.Background(), "flow", "s1", "hi")
	require.Error(t, err)

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Invalid server response", ce.Message)
}

func TestSendMessageDetailPassthrough(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Session not found"}`))
	})

	_, err := client.SendMessage(context.Background(), "flow", "gone", "hi")
	require.Error(t, err)

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrorTypeHTTP, ce.Type)
	assert.Equal(t, "Session not found", ce.Message)
}

func TestSendMessageNon2xxGarbageBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	})

	_, err := client.SendMessage(context.Background(), "flow", "s1", "hi")
	require.Error(t, err)

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Invalid server response", ce.Message)
}
