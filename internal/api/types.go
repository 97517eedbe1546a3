// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "encoding/json"

// =============================================================================
// WIRE TYPES
// =============================================================================

// StartSessionResponse is the body of POST /{mode}/start.
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatRequest is the body of POST /{mode}/chat/{session_id}.
type ChatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the raw chat reply before classification.
type chatResponse struct {
	Message  string        `json:"message"`
	Metadata *chatMetadata `json:"metadata"`
}

// chatMetadata carries the flow-mode signals. Absent in rag mode.
// validation_error holds the rejection text itself when present.
type chatMetadata struct {
	ValidationError string         `json:"validation_error"`
	Summary         map[string]any `json:"summary"`
	IsComplete      bool           `json:"is_complete"`
}

// UploadResult is the body of a successful POST /rag/upload.
type UploadResult struct {
	// ProcessedFiles maps each indexed filename to its chunk count.
	// Required on success; its absence is a protocol violation.
	ProcessedFiles map[string]int `json:"processed_files"`
	TotalChunks    int            `json:"total_chunks"`
	// Errors lists per-file failures for files the server rejected.
	Errors []string `json:"errors"`
}

// errorResponse is the conventional non-2xx body.
type errorResponse struct {
	Detail string `json:"detail"`
}

// =============================================================================
// TURN CLASSIFICATION
// =============================================================================

// TurnKind discriminates the three outcomes of a chat exchange.
type TurnKind int

const (
	// TurnPlain is an ordinary conversational reply.
	TurnPlain TurnKind = iota
	// TurnValidationRejected means the server rejected the user's answer
	// as part of the conversation. Not a transport or client error.
	TurnValidationRejected
	// TurnCompleted means the flow finished and a summary is available.
	TurnCompleted
)

// TurnResult is the classified outcome of one chat exchange. The raw
// response is decoded and classified exactly once, here; callers switch
// on Kind and never inspect metadata fields themselves.
type TurnResult struct {
	Kind    TurnKind
	Message string
	// Summary holds the collected fields when Kind is TurnCompleted.
	Summary map[string]any
}

// decodeTurn classifies a raw chat response body.
// A validation rejection takes precedence over completion: a reply
// flagged validation_error is never treated as a summary, even if the
// server also set is_complete.
func decodeTurn(body []byte) (TurnResult, error) {
	var raw chatResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return TurnResult{}, err
	}

	result := TurnResult{Kind: TurnPlain, Message: raw.Message}
	if raw.Metadata == nil {
		return result, nil
	}

	if raw.Metadata.ValidationError != "" {
		result.Kind = TurnValidationRejected
		result.Message = raw.Metadata.ValidationError
		return result, nil
	}
	if raw.Metadata.IsComplete && raw.Metadata.Summary != nil {
		result.Kind = TurnCompleted
		result.Summary = raw.Metadata.Summary
	}
	return result, nil
}
