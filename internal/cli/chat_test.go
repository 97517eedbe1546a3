// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

func TestSummaryLinesSkipsUnprintableKeys(t *testing.T) {
	lines := summaryLines(map[string]any{
		"":             "stray",
		"session_id":   "abc-123",
		"completed_at": "2026-08-31",
		"full_name":    "Ada Lovelace",
	})

	if len(lines) != 1 {
		t.Fatalf("lines = %v, want one entry", lines)
	}
	if lines[0] != "Full_name: Ada Lovelace" {
		t.Errorf("line = %q", lines[0])
	}
}

func TestPrintCompletionSummaryEmptyKey(t *testing.T) {
	// Must not panic on a parseable-but-odd server summary.
	printCompletionSummary(map[string]any{"": "value"})
}

func TestSummaryLinesEmptyMap(t *testing.T) {
	if lines := summaryLines(nil); len(lines) != 0 {
		t.Errorf("lines = %v, want none", lines)
	}
}
