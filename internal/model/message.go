// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the conversation data structures for intake-tui.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser   Role = "user"
	RoleBot    Role = "bot"
	RoleSystem Role = "system"
)

// Kind distinguishes how a message should be presented.
type Kind int

const (
	// KindNormal is a regular conversational message.
	KindNormal Kind = iota
	// KindError marks a bot message carrying an error or a validation
	// rejection. Rendered in the error bubble style.
	KindError
	// KindSummary marks the completion summary panel message.
	KindSummary
)

// Message is a single entry in the transcript.
type Message struct {
	ID        string
	Role      Role
	Kind      Kind
	Content   string
	Timestamp time.Time
}

// NewUserMessage creates a message authored by the user.
func NewUserMessage(content string) Message {
	return Message{
		ID:        generateID(),
		Role:      RoleUser,
		Kind:      KindNormal,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewBotMessage creates a regular bot message.
func NewBotMessage(content string) Message {
	return Message{
		ID:        generateID(),
		Role:      RoleBot,
		Kind:      KindNormal,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewBotErrorMessage creates a bot message rendered in the error style.
// Used for validation rejections and failed exchanges.
func NewBotErrorMessage(content string) Message {
	return Message{
		ID:        generateID(),
		Role:      RoleBot,
		Kind:      KindError,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewSummaryMessage creates the completion summary message.
func NewSummaryMessage(content string) Message {
	return Message{
		ID:        generateID(),
		Role:      RoleBot,
		Kind:      KindSummary,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewSystemMessage creates a system notice message.
func NewSystemMessage(content string) Message {
	return Message{
		ID:        generateID(),
		Role:      RoleSystem,
		Kind:      KindNormal,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// generateID creates a unique message identifier.
// Uses crypto/rand for collision resistance across rapid message creation.
func generateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Fallback to timestamp-based ID if crypto/rand fails
		return fmt.Sprintf("msg_%d", time.Now().UnixNano())
	}
	return "msg_" + hex.EncodeToString(b)
}
