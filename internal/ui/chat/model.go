// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversational view: transcript,
// input line, typing indicator, upload progress, and toasts.
package chat

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/intake-tui/internal/api"
	"github.com/jeranaias/intake-tui/internal/config"
	"github.com/jeranaias/intake-tui/internal/model"
	"github.com/jeranaias/intake-tui/internal/session"
	"github.com/jeranaias/intake-tui/internal/ui/components"
	"github.com/jeranaias/intake-tui/internal/ui/styles"
	"github.com/jeranaias/intake-tui/internal/util"
)

// ragTipDelay is how long after rag init the upload hint appears.
const ragTipDelay = 600 * time.Millisecond

// Model is the chat view state.
type Model struct {
	theme      *styles.Theme
	ctrl       *session.Controller
	transcript *model.Transcript

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	toasts    *components.ToastManager
	statusBar components.StatusBar
	welcome   components.Welcome
	progress  components.UploadProgress
	renderer  *glamour.TermRenderer

	width  int
	height int
	ready  bool

	typing  bool
	summary map[string]any

	baseURL      string
	maxInput     int
	maxFileBytes int64
	defaultMode  session.Mode
	showCount    bool
}

// New creates the chat model from the loaded configuration.
func New(cfg *config.Config) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Type a message or /help"
	input.CharLimit = 0
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	defaultMode := session.ModeNone
	if m, err := session.ParseMode(cfg.UI.DefaultMode); err == nil {
		defaultMode = m
	}

	return Model{
		theme:        theme,
		ctrl:         session.NewController(),
		transcript:   model.NewTranscript(),
		input:        input,
		viewport:     viewport.New(0, 0),
		spin:         spin,
		toasts:       components.NewToastManager(),
		statusBar:    components.NewStatusBar(theme),
		welcome:      components.NewWelcome(theme),
		progress:     components.NewUploadProgress(),
		baseURL:      cfg.Server.BaseURL,
		maxInput:     cfg.UI.MaxInputLen,
		maxFileBytes: cfg.Upload.MaxFileBytes,
		defaultMode:  defaultMode,
		showCount:    cfg.UI.ShowCharCount,
	}
}

// Controller exposes the session state machine, mainly for the
// application model and tests.
func (m *Model) Controller() *session.Controller {
	return m.ctrl
}

// Init starts the cursor blink, the toast ticker, and the initial
// connectivity probe.
func (m Model) Init() tea.Cmd {
	m.ctrl.BeginConnect()
	return tea.Batch(
		textinput.Blink,
		components.ToastTickCmd(),
		func() tea.Msg { return ConnectRequestMsg{} },
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.typing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		return m, components.ToastTickCmd()

	case ConnectResultMsg:
		return m.handleConnectResult(msg)

	case InitResultMsg:
		return m.handleInitResult(msg)

	case RagTipMsg:
		return m.handleRagTip(msg)

	case TurnResultMsg:
		return m.handleTurnResult(msg)

	case UploadProgressMsg:
		if msg.Epoch == m.ctrl.Epoch() {
			m.progress.SetBytes(msg.Sent, msg.Total)
		}
		return m, nil

	case UploadResultMsg:
		return m.handleUploadResult(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize recomputes component dimensions.
func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true
	m.theme.SetSize(width, height)

	m.statusBar.SetWidth(width)
	m.welcome.SetWidth(width)
	m.progress.SetWidth(width - 4)
	m.input.Width = width - 8

	wrap := width - 12
	if wrap < 20 {
		wrap = 20
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	); err == nil {
		m.renderer = r
	}

	// Fixed rows: welcome banner, input border box, status bar, typing
	// line. The viewport takes the rest.
	chrome := 11
	vpHeight := height - chrome
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.refreshViewport()
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.toasts.DismissNewest()
		return m, nil
	case "enter":
		return m.submitInput()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput dispatches the current input line: slash commands go to
// the command handler, everything else is a chat message.
func (m Model) submitInput() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if strings.HasPrefix(text, "/") {
		m.input.Reset()
		return m.handleCommand(text)
	}
	return m.sendMessage(text)
}

// sendMessage validates and submits one chat exchange.
func (m Model) sendMessage(text string) (Model, tea.Cmd) {
	if util.RuneLen(text) > m.maxInput {
		m.toasts.AddWarning(fmt.Sprintf("Message too long (max %d characters).", m.maxInput))
		return m, nil
	}
	if !m.ctrl.Connected() {
		m.toasts.AddWarning("Connect to server first.")
		return m, nil
	}

	if err := m.ctrl.BeginExchange(); err != nil {
		switch {
		case m.ctrl.Mode() == session.ModeNone:
			m.toasts.AddStatus("Pick a mode first: /mode flow or /mode rag.")
		case errors.Is(err, session.ErrFlowCompleted):
			m.toasts.AddStatus("Flow complete. Type /new to start another session.")
		}
		// Busy and not-ready submissions are dropped silently; input
		// state already tells the user a response is pending.
		return m, nil
	}

	m.transcript.AddUser(text)
	m.input.Reset()
	m.typing = true
	m.refreshViewport()

	req := TurnRequestMsg{
		Mode:      m.ctrl.Mode(),
		SessionID: m.ctrl.SessionID(),
		Text:      text,
		Epoch:     m.ctrl.Epoch(),
	}
	return m, tea.Batch(
		m.spin.Tick,
		func() tea.Msg { return req },
	)
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

func (m Model) handleConnectResult(msg ConnectResultMsg) (Model, tea.Cmd) {
	m.ctrl.OnConnectResult(msg.OK)
	if !msg.OK {
		m.toasts.AddError("Backend not reachable. Start the API and refresh.")
		return m, nil
	}

	// Auto-select the configured default mode on first connect.
	if m.defaultMode != session.ModeNone && m.ctrl.Mode() == session.ModeNone {
		if err := m.ctrl.SetMode(m.defaultMode); err == nil {
			req := InitRequestMsg{Mode: m.defaultMode, Epoch: m.ctrl.Epoch()}
			return m, func() tea.Msg { return req }
		}
	}
	return m, nil
}

func (m Model) handleInitResult(msg InitResultMsg) (Model, tea.Cmd) {
	if msg.Epoch != m.ctrl.Epoch() {
		return m, nil
	}

	if msg.Err != nil {
		m.ctrl.OnInitFailure()
		m.transcript.AddBot("Failed to initialize. Try again.")
		m.toasts.AddError(errText(msg.Err))
		m.refreshViewport()
		return m, nil
	}

	m.ctrl.OnInitSuccess(msg.SessionID)
	m.transcript.AddBot(msg.Greeting)
	m.refreshViewport()

	if m.ctrl.Mode() == session.ModeRag {
		epoch := m.ctrl.Epoch()
		return m, tea.Tick(ragTipDelay, func(time.Time) tea.Msg {
			return RagTipMsg{Epoch: epoch}
		})
	}
	return m, nil
}

func (m Model) handleRagTip(msg RagTipMsg) (Model, tea.Cmd) {
	// The tip belongs to the session it was scheduled for. If the user
	// switched modes or started over during the delay, drop it.
	if msg.Epoch != m.ctrl.Epoch() || m.ctrl.Mode() != session.ModeRag {
		return m, nil
	}
	m.transcript.AddBot("Tip: Upload documents with /upload, then ask questions about them.")
	m.refreshViewport()
	return m, nil
}

func (m Model) handleTurnResult(msg TurnResultMsg) (Model, tea.Cmd) {
	if msg.Epoch != m.ctrl.Epoch() {
		return m, nil
	}
	m.typing = false

	if msg.Err != nil {
		m.ctrl.EndExchangeErr()
		text := errText(msg.Err)
		m.transcript.AddBotError("Error: " + text)
		m.toasts.AddError(text)
		m.statusBar.SetRetries(m.ctrl.RetryCount())
		m.refreshViewport()
		return m, nil
	}

	switch msg.Result.Kind {
	case api.TurnValidationRejected:
		m.ctrl.EndExchangeOK(false)
		m.transcript.AddBotError(msg.Result.Message)

	case api.TurnCompleted:
		m.ctrl.EndExchangeOK(true)
		m.transcript.AddBot(msg.Result.Message)
		m.summary = msg.Result.Summary
		m.transcript.Add(model.NewSummaryMessage(""))

	default:
		m.ctrl.EndExchangeOK(false)
		m.transcript.AddBot(msg.Result.Message)
	}

	m.statusBar.SetRetries(m.ctrl.RetryCount())
	m.refreshViewport()
	return m, nil
}

func (m Model) handleUploadResult(msg UploadResultMsg) (Model, tea.Cmd) {
	if msg.Epoch != m.ctrl.Epoch() {
		return m, nil
	}

	// Release the progress artifact no matter how the upload settled.
	m.progress.Stop()
	m.ctrl.EndUpload()

	if msg.Err != nil {
		text := errText(msg.Err)
		m.transcript.AddBotError("Upload failed: " + text)
		m.toasts.AddError("Upload error: " + text)
		m.refreshViewport()
		return m, nil
	}

	result := msg.Result
	count := len(result.ProcessedFiles)
	m.transcript.AddBot(fmt.Sprintf(
		"Uploaded %d file(s). Indexed %d chunks. Ask your question now!",
		count, result.TotalChunks))

	names := make([]string, 0, count)
	for name := range result.ProcessedFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, count)
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("- %s: %d chunks", name, result.ProcessedFiles[name]))
	}
	if len(lines) > 0 {
		m.transcript.AddBot("Summary:\n" + strings.Join(lines, "\n"))
	}

	if len(result.Errors) > 0 {
		m.toasts.AddWarning(strings.Join(result.Errors, "; "))
	}
	m.refreshViewport()
	return m, nil
}

// errText extracts the display message from a client error.
func errText(err error) string {
	var ce *api.ClientError
	if errors.As(err, &ce) {
		return ce.UserMessage()
	}
	return err.Error()
}
