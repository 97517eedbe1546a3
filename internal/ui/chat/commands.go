// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/intake-tui/internal/model"
	"github.com/jeranaias/intake-tui/internal/session"
	"github.com/jeranaias/intake-tui/internal/upload"
)

const helpText = `Commands:
  /mode flow     guided intake conversation
  /mode rag      question answering over uploaded documents
  /upload <path> upload PDF or TXT documents (rag mode only)
  /new           start a fresh session in the current mode
  /status        show connection and session state
  /help          this message
  /quit          exit`

// handleCommand dispatches a slash command line.
func (m Model) handleCommand(line string) (Model, tea.Cmd) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/help":
		m.transcript.Add(model.NewSystemMessage(helpText))
		m.refreshViewport()
		return m, nil

	case "/quit":
		return m, tea.Quit

	case "/mode":
		return m.cmdMode(args)

	case "/new":
		return m.cmdNew()

	case "/status":
		return m.cmdStatus()

	case "/upload":
		return m.cmdUpload(args)
	}

	m.toasts.AddWarning(fmt.Sprintf("Unknown command %s. Type /help.", cmd))
	return m, nil
}

// cmdMode switches to flow or rag and initializes a session.
func (m Model) cmdMode(args []string) (Model, tea.Cmd) {
	if len(args) != 1 {
		m.toasts.AddStatus("Usage: /mode flow|rag")
		return m, nil
	}
	mode, err := session.ParseMode(args[0])
	if err != nil {
		m.toasts.AddWarning("Unknown mode. Use /mode flow or /mode rag.")
		return m, nil
	}

	if err := m.ctrl.SetMode(mode); err != nil {
		switch {
		case errors.Is(err, session.ErrNotConnected):
			m.toasts.AddWarning("Connect to server first.")
			// Kick off another probe so a recovered backend is noticed.
			// Status stays Disconnected until the probe succeeds.
			return m, func() tea.Msg { return ConnectRequestMsg{} }
		case errors.Is(err, session.ErrBusy):
			m.toasts.AddWarning("Please wait for the current response.")
		}
		return m, nil
	}

	return m.beginInit()
}

// cmdNew restarts the current mode with a fresh session.
func (m Model) cmdNew() (Model, tea.Cmd) {
	if err := m.ctrl.StartNewSession(); err != nil {
		switch {
		case errors.Is(err, session.ErrNoMode):
			m.toasts.AddStatus("Pick a mode first: /mode flow or /mode rag.")
		case errors.Is(err, session.ErrBusy):
			m.toasts.AddWarning("Please wait for the current response.")
		}
		return m, nil
	}
	return m.beginInit()
}

// beginInit clears the transcript and requests a backend session.
// The welcome banner lives outside the transcript and survives.
func (m Model) beginInit() (Model, tea.Cmd) {
	m.transcript.Clear()
	m.summary = nil
	m.typing = false
	m.progress.Stop()
	m.refreshViewport()

	req := InitRequestMsg{Mode: m.ctrl.Mode(), Epoch: m.ctrl.Epoch()}
	return m, func() tea.Msg { return req }
}

// cmdStatus prints connection and session details into the transcript.
func (m Model) cmdStatus() (Model, tea.Cmd) {
	mode := m.ctrl.Mode().String()
	if mode == "" {
		mode = "none"
	}
	sessionID := m.ctrl.SessionID()
	if sessionID == "" {
		sessionID = "none"
	}
	status := fmt.Sprintf(
		"Server:  %s\nMode:    %s\nStatus:  %s\nSession: %s\nRetries: %d/%d",
		m.baseURL, mode, m.ctrl.Status(), sessionID,
		m.ctrl.RetryCount(), session.MaxRetries)
	m.transcript.Add(model.NewSystemMessage(status))
	m.refreshViewport()
	return m, nil
}

// cmdUpload admits the given paths and starts the upload.
func (m Model) cmdUpload(args []string) (Model, tea.Cmd) {
	if m.ctrl.Mode() != session.ModeRag {
		m.toasts.AddWarning("Upload is only available in rag mode.")
		return m, nil
	}
	if len(args) == 0 {
		m.toasts.AddStatus("Usage: /upload <file> [file...]")
		return m, nil
	}

	metas := make([]upload.FileMeta, 0, len(args))
	for _, path := range args {
		meta, err := upload.Stat(path)
		if err != nil {
			m.toasts.AddWarning(err.Error())
			continue
		}
		metas = append(metas, meta)
	}

	admitted, rejected := upload.Filter(metas, m.maxFileBytes)
	if len(admitted) == 0 {
		if len(rejected) > 0 {
			m.toasts.AddWarning("Only PDF/TXT <= 10MB allowed.")
		}
		return m, nil
	}

	if err := m.ctrl.BeginUpload(); err != nil {
		if errors.Is(err, session.ErrBusy) {
			m.toasts.AddWarning("Please wait for the current response.")
		}
		return m, nil
	}

	files, err := upload.LoadAll(admitted)
	if err != nil {
		m.ctrl.EndUpload()
		m.toasts.AddError(err.Error())
		return m, nil
	}

	m.progress.Start(len(files))
	req := UploadRequestMsg{Files: files, Epoch: m.ctrl.Epoch()}
	return m, func() tea.Msg { return req }
}
