// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/intake-tui/internal/model"
	"github.com/jeranaias/intake-tui/internal/ui/components"
	"github.com/jeranaias/intake-tui/internal/util"
)

// View renders the full chat screen.
func (m Model) View() string {
	if !m.ready {
		return "Starting intake..."
	}

	sections := []string{
		m.welcome.View(),
		m.viewport.View(),
	}

	if m.progress.Active() {
		sections = append(sections, m.progress.View())
	}
	if m.typing {
		sections = append(sections, m.spin.View()+m.theme.ThinkingText.Render(" Assistant is typing..."))
	}

	sections = append(sections, m.viewInput(), m.viewStatusBar())

	screen := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.toasts.HasToasts() {
		stack := components.RenderToastStack(m.toasts.GetToasts(), m.width, 0)
		screen = lipgloss.JoinVertical(lipgloss.Left, screen, stack)
	}
	return screen
}

// viewInput renders the prompt line with the character counter.
func (m Model) viewInput() string {
	line := m.theme.InputPrompt.Render("> ") + m.input.View()

	if m.showCount {
		count := util.RuneLen(strings.TrimSpace(m.input.Value()))
		counter := fmt.Sprintf("%d/%d", count, m.maxInput)
		style := m.theme.CharCount
		switch {
		case count > m.maxInput:
			style = m.theme.CharCountDanger
		case count > m.maxInput*9/10:
			style = m.theme.CharCountWarning
		}
		line = lipgloss.JoinVertical(lipgloss.Left, line, style.Render(counter))
	}

	return m.theme.InputContainer.Width(m.width - 2).Render(line)
}

// viewStatusBar refreshes and renders the bottom bar.
func (m Model) viewStatusBar() string {
	bar := m.statusBar
	bar.SetMode(m.ctrl.Mode().String())
	bar.SetStatus(m.ctrl.Status().String(), m.ctrl.Connected())
	bar.SetRetries(m.ctrl.RetryCount())
	return bar.View()
}

// refreshViewport re-renders the transcript and scrolls to the bottom.
func (m *Model) refreshViewport() {
	if m.viewport.Width <= 0 {
		return
	}

	parts := make([]string, 0, m.transcript.Len())
	for _, msg := range m.transcript.Messages {
		parts = append(parts, m.renderMessage(msg))
	}
	m.viewport.SetContent(strings.Join(parts, "\n"))
	m.viewport.GotoBottom()
}

// renderMessage renders one transcript entry in its bubble style.
func (m *Model) renderMessage(msg model.Message) string {
	switch {
	case msg.Kind == model.KindSummary:
		return components.RenderSummary(m.theme, m.summary, m.viewport.Width)

	case msg.Role == model.RoleUser:
		bubble := m.theme.UserBubble.MaxWidth(m.bubbleWidth())
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, bubble.Render(msg.Content))

	case msg.Role == model.RoleSystem:
		return m.theme.ShortcutDesc.Render(msg.Content)

	case msg.Kind == model.KindError:
		return m.theme.BotError.MaxWidth(m.bubbleWidth()).Render(msg.Content)

	default:
		return m.theme.BotBubble.MaxWidth(m.bubbleWidth()).Render(m.renderMarkdown(msg.Content))
	}
}

// renderMarkdown renders bot markdown, falling back to plain text.
func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// bubbleWidth bounds message bubbles to most of the viewport.
func (m *Model) bubbleWidth() int {
	w := m.viewport.Width * 4 / 5
	if w < 20 {
		w = 20
	}
	return w
}
