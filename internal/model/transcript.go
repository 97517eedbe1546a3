// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Transcript holds the ordered messages of the current session.
// The welcome banner is not part of the transcript; it is rendered
// separately so it survives Clear() when a new session starts.
type Transcript struct {
	Messages []Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{
		Messages: make([]Message, 0, 32),
	}
}

// Add appends a message to the transcript.
func (t *Transcript) Add(msg Message) {
	t.Messages = append(t.Messages, msg)
}

// AddUser appends a user message and returns it.
func (t *Transcript) AddUser(content string) Message {
	msg := NewUserMessage(content)
	t.Add(msg)
	return msg
}

// AddBot appends a regular bot message and returns it.
func (t *Transcript) AddBot(content string) Message {
	msg := NewBotMessage(content)
	t.Add(msg)
	return msg
}

// AddBotError appends an error-styled bot message and returns it.
func (t *Transcript) AddBotError(content string) Message {
	msg := NewBotErrorMessage(content)
	t.Add(msg)
	return msg
}

// Last returns the most recent message, or nil if the transcript is empty.
func (t *Transcript) Last() *Message {
	if len(t.Messages) == 0 {
		return nil
	}
	return &t.Messages[len(t.Messages)-1]
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.Messages)
}

// Clear removes all messages. Called when a new session starts.
func (t *Transcript) Clear() {
	t.Messages = t.Messages[:0]
}
