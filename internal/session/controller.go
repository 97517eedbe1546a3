// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the client-side session state machine. The
// controller is pure: it validates and applies transitions, and the
// caller performs the corresponding I/O. All methods must be called
// from the UI update loop; the controller is not goroutine-safe.
package session

import (
	"errors"
	"fmt"
)

// Mode selects which conversation engine the session talks to.
type Mode int

const (
	ModeNone Mode = iota
	ModeFlow
	ModeRag
)

// String returns the wire name of the mode, used in request paths.
func (m Mode) String() string {
	switch m {
	case ModeFlow:
		return "flow"
	case ModeRag:
		return "rag"
	}
	return ""
}

// ParseMode maps a user-facing mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "flow":
		return ModeFlow, nil
	case "rag":
		return ModeRag, nil
	}
	return ModeNone, fmt.Errorf("unknown mode %q", s)
}

// Status is the session lifecycle state.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	StatusInitializing
	StatusReady
	StatusAwaitingResponse
	StatusUploading
	StatusCompleted
	StatusError
)

// String returns the status text shown in the status bar.
func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "Disconnected"
	case StatusConnecting:
		return "Connecting..."
	case StatusConnected:
		return "Connected"
	case StatusInitializing:
		return "Initializing..."
	case StatusReady:
		return "Ready"
	case StatusAwaitingResponse:
		return "Ready"
	case StatusUploading:
		return "Uploading..."
	case StatusCompleted:
		return "Complete"
	case StatusError:
		return "Error"
	}
	return "Unknown"
}

// MaxRetries caps the retry counter. The count is bookkeeping only;
// nothing retries automatically.
const MaxRetries = 3

// Guard errors returned by refused transitions.
var (
	ErrNotConnected  = errors.New("not connected to server")
	ErrNotReady      = errors.New("session not ready")
	ErrBusy          = errors.New("an exchange is already in flight")
	ErrNoMode        = errors.New("no mode selected")
	ErrWrongMode     = errors.New("operation not available in this mode")
	ErrFlowCompleted = errors.New("flow already completed")
)

// Controller owns the single client session.
type Controller struct {
	mode      Mode
	status    Status
	sessionID string
	epoch     uint64
	retries   int
}

// NewController starts disconnected with no mode selected.
func NewController() *Controller {
	return &Controller{
		mode:   ModeNone,
		status: StatusDisconnected,
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (c *Controller) Mode() Mode        { return c.mode }
func (c *Controller) Status() Status    { return c.status }
func (c *Controller) SessionID() string { return c.sessionID }
func (c *Controller) RetryCount() int   { return c.retries }

// Epoch identifies the current session generation. Every mode switch or
// new-session bump invalidates messages scheduled for older epochs.
func (c *Controller) Epoch() uint64 { return c.epoch }

// Connected reports whether the backend has been reached this session.
func (c *Controller) Connected() bool {
	return c.status != StatusDisconnected && c.status != StatusConnecting
}

// InFlight reports whether an exchange or upload is outstanding.
func (c *Controller) InFlight() bool {
	return c.status == StatusAwaitingResponse || c.status == StatusUploading
}

// CanSend reports whether a new message may be submitted.
func (c *Controller) CanSend() bool {
	return c.status == StatusReady
}

// =============================================================================
// CONNECTIVITY
// =============================================================================

// BeginConnect enters the connecting state before a health probe.
func (c *Controller) BeginConnect() {
	if c.status == StatusDisconnected {
		c.status = StatusConnecting
	}
}

// OnConnectResult records the outcome of the health probe.
func (c *Controller) OnConnectResult(ok bool) {
	if ok {
		if c.status == StatusDisconnected || c.status == StatusConnecting {
			c.status = StatusConnected
		}
		return
	}
	c.status = StatusDisconnected
}

// =============================================================================
// MODE AND SESSION LIFECYCLE
// =============================================================================

// SetMode switches the client to the given mode and enters
// Initializing. Refused while disconnected or while an exchange is in
// flight; refusal leaves all state untouched.
func (c *Controller) SetMode(mode Mode) error {
	if !c.Connected() {
		return ErrNotConnected
	}
	if c.InFlight() {
		return ErrBusy
	}
	if mode != ModeFlow && mode != ModeRag {
		return ErrNoMode
	}

	c.mode = mode
	c.sessionID = ""
	c.retries = 0
	c.epoch++
	c.status = StatusInitializing
	return nil
}

// StartNewSession re-initializes the current mode with a fresh session.
// Allowed from Ready, Completed, and Error; refused mid-exchange.
func (c *Controller) StartNewSession() error {
	if c.mode == ModeNone {
		return ErrNoMode
	}
	if c.InFlight() {
		return ErrBusy
	}

	c.sessionID = ""
	c.retries = 0
	c.epoch++
	c.status = StatusInitializing
	return nil
}

// OnInitSuccess records the backend-issued session ID and enters Ready.
func (c *Controller) OnInitSuccess(sessionID string) {
	c.sessionID = sessionID
	c.retries = 0
	c.status = StatusReady
}

// OnInitFailure enters the Error state. The mode selection is kept so
// the user can retry with /new.
func (c *Controller) OnInitFailure() {
	c.sessionID = ""
	c.status = StatusError
}

// =============================================================================
// EXCHANGES
// =============================================================================

// BeginExchange guards the at-most-one-in-flight invariant and enters
// AwaitingResponse. Refused unless the session is Ready.
func (c *Controller) BeginExchange() error {
	switch c.status {
	case StatusReady:
		c.status = StatusAwaitingResponse
		return nil
	case StatusAwaitingResponse, StatusUploading:
		return ErrBusy
	case StatusCompleted:
		return ErrFlowCompleted
	default:
		return ErrNotReady
	}
}

// EndExchangeOK completes an exchange. completed marks the flow as
// finished; otherwise the session returns to Ready.
func (c *Controller) EndExchangeOK(completed bool) {
	c.retries = 0
	if completed {
		c.status = StatusCompleted
		return
	}
	c.status = StatusReady
}

// EndExchangeErr completes a failed exchange. The retry counter is
// advanced up to MaxRetries and the session returns to Ready so the
// user can resubmit.
func (c *Controller) EndExchangeErr() {
	if c.retries < MaxRetries {
		c.retries++
	}
	c.status = StatusReady
}

// =============================================================================
// UPLOADS
// =============================================================================

// BeginUpload guards upload admission: rag mode only, session Ready.
func (c *Controller) BeginUpload() error {
	if c.mode != ModeRag {
		return ErrWrongMode
	}
	if c.status == StatusAwaitingResponse || c.status == StatusUploading {
		return ErrBusy
	}
	if c.status != StatusReady {
		return ErrNotReady
	}
	c.status = StatusUploading
	return nil
}

// EndUpload returns to Ready regardless of the upload outcome. The
// progress artifact must always be released.
func (c *Controller) EndUpload() {
	if c.status == StatusUploading {
		c.status = StatusReady
	}
}
