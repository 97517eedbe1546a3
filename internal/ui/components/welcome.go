// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/intake-tui/internal/ui/styles"
)

// Welcome renders the persistent banner at the top of the transcript.
// It is drawn outside the message list, so clearing the transcript for
// a new session never removes it.
type Welcome struct {
	theme *styles.Theme
	width int
}

// NewWelcome creates the welcome banner.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{theme: theme}
}

// SetWidth updates the rendered width.
func (w *Welcome) SetWidth(width int) {
	w.width = width
}

// View renders the banner.
func (w *Welcome) View() string {
	title := w.theme.WelcomeTitle.Render("intake")
	info := w.theme.WelcomeInfo.Render(strings.Join([]string{
		"Pick a mode to begin: /mode flow for a guided intake,",
		"/mode rag to ask questions about uploaded documents.",
		"Type /help for all commands.",
	}, "\n"))

	box := w.theme.WelcomeBox
	if w.width > 4 {
		box = box.Width(w.width - 2)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, info))
}
