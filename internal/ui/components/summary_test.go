// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/intake-tui/internal/ui/styles"
)

func TestRenderSummaryExcludesBookkeeping(t *testing.T) {
	theme := styles.NewTheme()
	out := RenderSummary(theme, map[string]any{
		"name":         "Ada",
		"email":        "ada@example.com",
		"session_id":   "abc",
		"completed_at": "2025-01-01",
	}, 80)

	if strings.Contains(out, "abc") || strings.Contains(out, "2025-01-01") {
		t.Error("bookkeeping keys must not be rendered")
	}
	if !strings.Contains(out, "Ada") || !strings.Contains(out, "ada@example.com") {
		t.Error("summary values missing from panel")
	}
}

func TestRenderSummaryCapitalizesKeys(t *testing.T) {
	theme := styles.NewTheme()
	out := RenderSummary(theme, map[string]any{"name": "Ada"}, 80)
	if !strings.Contains(out, "Name") {
		t.Errorf("expected capitalized key in output:\n%s", out)
	}
}

func TestRenderSummaryIncludesNewHint(t *testing.T) {
	theme := styles.NewTheme()
	out := RenderSummary(theme, map[string]any{"name": "Ada"}, 80)
	if !strings.Contains(out, "/new") {
		t.Error("summary panel must hint at /new")
	}
}

func TestLabelFor(t *testing.T) {
	if got := labelFor("name"); got != "Name" {
		t.Errorf("labelFor(name) = %q", got)
	}
	if got := labelFor("full_name"); got != "Full_name" {
		t.Errorf("labelFor(full_name) = %q", got)
	}
	if got := labelFor(""); got != "" {
		t.Errorf("labelFor(empty) = %q", got)
	}
}
