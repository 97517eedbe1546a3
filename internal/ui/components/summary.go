// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/intake-tui/internal/ui/styles"
)

// summaryExcludedKeys are bookkeeping fields never shown to the user.
var summaryExcludedKeys = map[string]bool{
	"session_id":   true,
	"completed_at": true,
}

// RenderSummary renders the flow completion panel from the collected
// field map. Keys are title-cased and sorted; bookkeeping keys are
// dropped.
func RenderSummary(theme *styles.Theme, summary map[string]any, width int) string {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		if summaryExcludedKeys[k] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys)+2)
	lines = append(lines, theme.SummaryTitle.Render("Flow complete"))
	for _, k := range keys {
		key := theme.SummaryKey.Render(labelFor(k) + ": ")
		val := theme.SummaryValue.Render(fmt.Sprintf("%v", summary[k]))
		lines = append(lines, key+val)
	}
	lines = append(lines, theme.SummaryHint.Render("Type /new to start another session."))

	box := theme.SummaryBox
	if width > 8 {
		box = box.MaxWidth(width - 4)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// labelFor capitalizes the first letter of a summary key.
func labelFor(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
