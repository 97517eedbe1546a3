// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/intake-tui/internal/api"
	"github.com/jeranaias/intake-tui/internal/session"
)

// Request messages are emitted by the chat model and executed by the
// application model in main, which owns the API client and goroutines.
// Result messages come back through the shared tea.Program reference.
// Every result carries the session epoch it was issued under; the
// update loop drops results from earlier epochs.

// =============================================================================
// CONNECTION MESSAGES
// =============================================================================

// ConnectRequestMsg asks for a health probe against the backend.
type ConnectRequestMsg struct{}

// ConnectResultMsg reports the probe outcome.
type ConnectResultMsg struct {
	OK bool
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// InitRequestMsg asks for a new backend session in the given mode.
type InitRequestMsg struct {
	Mode  session.Mode
	Epoch uint64
}

// InitResultMsg reports session creation.
type InitResultMsg struct {
	Epoch     uint64
	SessionID string
	Greeting  string
	Err       error
}

// RagTipMsg is the delayed upload hint scheduled after rag init.
// Dropped when its epoch no longer matches the controller's.
type RagTipMsg struct {
	Epoch uint64
}

// =============================================================================
// EXCHANGE MESSAGES
// =============================================================================

// TurnRequestMsg asks for one chat exchange.
type TurnRequestMsg struct {
	Mode      session.Mode
	SessionID string
	Text      string
	Epoch     uint64
}

// TurnResultMsg reports the classified exchange outcome.
type TurnResultMsg struct {
	Epoch  uint64
	Result api.TurnResult
	Err    error
}

// =============================================================================
// UPLOAD MESSAGES
// =============================================================================

// UploadRequestMsg asks for a multipart document upload.
type UploadRequestMsg struct {
	Files []api.UploadFile
	Epoch uint64
}

// UploadProgressMsg carries raw byte progress from the transport.
type UploadProgressMsg struct {
	Sent  int64
	Total int64
	Epoch uint64
}

// UploadResultMsg reports the settled upload.
type UploadResultMsg struct {
	Epoch  uint64
	Result *api.UploadResult
	Err    error
}
