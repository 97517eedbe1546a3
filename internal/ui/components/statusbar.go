// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/intake-tui/internal/ui/styles"
	"github.com/jeranaias/intake-tui/internal/util"
)

// StatusBar renders the bottom status line: mode badge, session status
// text, and shortcut hints. Layout adapts to terminal width.
type StatusBar struct {
	theme      *styles.Theme
	width      int
	mode       string // "flow", "rag", or "" for none
	statusText string // e.g. "Ready", "Uploading..."
	healthy    bool
	retries    int
}

// NewStatusBar creates a status bar with no mode selected.
func NewStatusBar(theme *styles.Theme) StatusBar {
	return StatusBar{theme: theme, statusText: "Disconnected"}
}

// SetWidth updates the rendered width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetMode updates the mode badge.
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// SetStatus updates the status text and connectivity flag.
func (s *StatusBar) SetStatus(text string, healthy bool) {
	s.statusText = text
	s.healthy = healthy
}

// SetRetries updates the retry counter display.
func (s *StatusBar) SetRetries(n int) {
	s.retries = n
}

// View renders the status bar for the current width.
func (s *StatusBar) View() string {
	if s.width < 40 {
		return s.viewNarrow()
	}
	if s.width < 90 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow shows only the indicator and status text.
func (s *StatusBar) viewNarrow() string {
	bar := s.indicator() + " " + s.statusText
	return s.theme.StatusBar.Width(s.width).Render(util.TruncateWidth(bar, s.width))
}

// viewMedium adds the mode badge.
func (s *StatusBar) viewMedium() string {
	parts := []string{s.indicator() + " " + s.statusText}
	if badge := s.modeBadge(); badge != "" {
		parts = append(parts, badge)
	}
	bar := strings.Join(parts, "  ")
	return s.theme.StatusBar.Width(s.width).Render(bar)
}

// viewWide adds shortcut hints and the retry counter.
func (s *StatusBar) viewWide() string {
	parts := []string{s.indicator() + " " + s.statusText}
	if badge := s.modeBadge(); badge != "" {
		parts = append(parts, badge)
	}
	if s.retries > 0 {
		parts = append(parts, s.theme.WarningStyle.Render("retries "+strconv.Itoa(s.retries)))
	}
	left := strings.Join(parts, "  ")

	hints := s.theme.ShortcutKey.Render("/help") +
		s.theme.ShortcutDesc.Render(" commands  ") +
		s.theme.ShortcutKey.Render("ctrl+c") +
		s.theme.ShortcutDesc.Render(" quit")

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(hints) - 2
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + hints
	return s.theme.StatusBar.Width(s.width).Render(bar)
}

// indicator returns the connectivity glyph.
func (s *StatusBar) indicator() string {
	if s.healthy {
		return s.theme.SuccessStyle.Render(styles.StatusIndicators.Success)
	}
	return s.theme.ErrorStyle.Render(styles.StatusIndicators.Error)
}

// modeBadge returns the styled mode name, or "" when no mode is set.
func (s *StatusBar) modeBadge() string {
	switch s.mode {
	case "flow":
		return s.theme.ModeFlow.Render("FLOW")
	case "rag":
		return s.theme.ModeRag.Render("RAG")
	}
	return ""
}
