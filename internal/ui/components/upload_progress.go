// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/intake-tui/internal/ui/styles"
)

// UploadProgress tracks and renders the document upload indicator.
// The displayed percent is clamped to 0..100 and never decreases while
// a single upload is active; odd byte counts from the transport cannot
// make the bar jump backwards.
type UploadProgress struct {
	active  bool
	label   string
	percent int
	width   int
}

// NewUploadProgress creates an inactive progress indicator.
func NewUploadProgress() UploadProgress {
	return UploadProgress{width: 40}
}

// Start activates the indicator at zero for a new upload.
func (p *UploadProgress) Start(fileCount int) {
	p.active = true
	p.percent = 0
	p.label = fmt.Sprintf("Uploading %d file(s)", fileCount)
}

// SetBytes updates the percent from raw byte progress.
func (p *UploadProgress) SetBytes(sent, total int64) {
	if !p.active || total <= 0 {
		return
	}
	pct := int(sent * 100 / total)
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	// Monotone: never move backwards
	if pct > p.percent {
		p.percent = pct
	}
}

// Stop releases the indicator. Always called when an upload settles,
// success or failure.
func (p *UploadProgress) Stop() {
	p.active = false
	p.percent = 0
	p.label = ""
}

// Active reports whether an upload is being tracked.
func (p *UploadProgress) Active() bool {
	return p.active
}

// Percent returns the current clamped percent.
func (p *UploadProgress) Percent() int {
	return p.percent
}

// SetWidth adjusts the rendered bar width.
func (p *UploadProgress) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	p.width = width
}

// View renders the progress box, or an empty string when inactive.
func (p *UploadProgress) View() string {
	if !p.active {
		return ""
	}

	barWidth := p.width - 10
	if barWidth < 10 {
		barWidth = 10
	}
	filled := barWidth * p.percent / 100
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)

	label := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(p.label)

	barStyled := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("[" + bar + "]")

	pct := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render(fmt.Sprintf("%3d%%", p.percent))

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1)

	return box.Render(label + "\n" + barStyled + " " + pct)
}
