// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

func TestMessageConstructors(t *testing.T) {
	user := NewUserMessage("hello")
	if user.Role != RoleUser || user.Kind != KindNormal {
		t.Errorf("unexpected user message: role=%v kind=%v", user.Role, user.Kind)
	}
	if !strings.HasPrefix(user.ID, "msg_") {
		t.Errorf("ID missing msg_ prefix: %q", user.ID)
	}

	bot := NewBotMessage("hi")
	if bot.Role != RoleBot || bot.Kind != KindNormal {
		t.Errorf("unexpected bot message: role=%v kind=%v", bot.Role, bot.Kind)
	}

	botErr := NewBotErrorMessage("nope")
	if botErr.Role != RoleBot || botErr.Kind != KindError {
		t.Errorf("unexpected bot error message: role=%v kind=%v", botErr.Role, botErr.Kind)
	}

	sum := NewSummaryMessage("summary")
	if sum.Kind != KindSummary {
		t.Errorf("summary kind = %v, want KindSummary", sum.Kind)
	}
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateID()
		if seen[id] {
			t.Fatalf("duplicate ID generated: %q", id)
		}
		seen[id] = true
	}
}

func TestTranscriptAddAndLast(t *testing.T) {
	tr := NewTranscript()
	if tr.Last() != nil {
		t.Error("Last() on empty transcript should be nil")
	}

	tr.AddUser("question")
	tr.AddBot("answer")

	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}
	last := tr.Last()
	if last == nil || last.Content != "answer" {
		t.Errorf("Last() = %+v, want answer", last)
	}
}

func TestTranscriptClear(t *testing.T) {
	tr := NewTranscript()
	tr.AddUser("a")
	tr.AddBotError("b")
	tr.Clear()

	if tr.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", tr.Len())
	}
}
