// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// intake is a terminal client for the intake backend: a guided flow
// conversation and document question answering, with a plain CLI
// fallback for non-interactive use.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/jeranaias/intake-tui/internal/api"
	"github.com/jeranaias/intake-tui/internal/cli"
	"github.com/jeranaias/intake-tui/internal/config"
	"github.com/jeranaias/intake-tui/internal/ui/chat"
)

// =============================================================================
// PROGRAM REFERENCE
// =============================================================================

// programRef lets API goroutines deliver results into the update loop.
var (
	programMu  sync.Mutex
	programRef *tea.Program
)

// send delivers a message to the running program, if any.
func send(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// appModel wraps the chat view and executes its I/O requests. The chat
// model stays synchronous; every request message spawns a goroutine
// here and the result comes back through send.
type appModel struct {
	chat   chat.Model
	client *api.Client

	// probeLimiter paces reconnect probes so a flapping backend is not
	// hammered by repeated /mode attempts.
	probeLimiter *rate.Limiter
}

func newAppModel(cfg *config.Config) appModel {
	client := api.NewClient(cfg.Server.BaseURL,
		api.WithTimeouts(cfg.RequestTimeout(), cfg.UploadTimeout(), cfg.HealthTimeout()))

	return appModel{
		chat:         chat.New(cfg),
		client:       client,
		probeLimiter: rate.NewLimiter(rate.Every(cfg.HealthTimeout()), 2),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.chat.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chat.ConnectRequestMsg:
		go m.runProbe()
		return m, nil

	case chat.InitRequestMsg:
		go m.runInit(msg)
		return m, nil

	case chat.TurnRequestMsg:
		go m.runTurn(msg)
		return m, nil

	case chat.UploadRequestMsg:
		go m.runUpload(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	return m.chat.View()
}

// =============================================================================
// REQUEST EXECUTION
// =============================================================================

func (m appModel) runProbe() {
	ctx := context.Background()
	if !m.probeLimiter.Allow() {
		if err := m.probeLimiter.Wait(ctx); err != nil {
			send(chat.ConnectResultMsg{OK: false})
			return
		}
	}
	err := m.client.CheckHealth(ctx)
	send(chat.ConnectResultMsg{OK: err == nil})
}

func (m appModel) runInit(req chat.InitRequestMsg) {
	start, err := m.client.StartSession(context.Background(), req.Mode.String())
	if err != nil {
		send(chat.InitResultMsg{Epoch: req.Epoch, Err: err})
		return
	}
	send(chat.InitResultMsg{
		Epoch:     req.Epoch,
		SessionID: start.SessionID,
		Greeting:  start.Message,
	})
}

func (m appModel) runTurn(req chat.TurnRequestMsg) {
	result, err := m.client.SendMessage(
		context.Background(), req.Mode.String(), req.SessionID, req.Text)
	send(chat.TurnResultMsg{Epoch: req.Epoch, Result: result, Err: err})
}

func (m appModel) runUpload(req chat.UploadRequestMsg) {
	result, err := m.client.UploadDocuments(
		context.Background(), req.Files,
		func(sent, total int64) {
			send(chat.UploadProgressMsg{Sent: sent, Total: total, Epoch: req.Epoch})
		})
	send(chat.UploadResultMsg{Epoch: req.Epoch, Result: result, Err: err})
}

// =============================================================================
// ENTRY POINT
// =============================================================================

func main() {
	args := os.Args[1:]

	if len(args) > 0 {
		switch args[0] {
		case "tui":
			args = args[1:]
		default:
			os.Exit(cli.Run(args[0], args[1:]))
		}
	}

	os.Exit(runTUI(args))
}

// runTUI starts the full-screen interface.
func runTUI(args []string) int {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "intake: stdin is not a terminal; use 'intake ask' or 'intake chat'")
		return 1
	}

	parser := cli.NewArgParser(args)
	cfg, err := config.Load(parser.Flag("config"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "intake: "+err.Error())
		return 1
	}
	if server := parser.Flag("server"); server != "" {
		cfg.Server.BaseURL = server
	}
	if mode := parser.Flag("mode"); mode != "" {
		cfg.UI.DefaultMode = mode
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "intake: "+err.Error())
			return 1
		}
	}
	config.SetGlobal(cfg)

	p := tea.NewProgram(newAppModel(cfg), tea.WithAltScreen())

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	defer func() {
		programMu.Lock()
		programRef = nil
		programMu.Unlock()
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "intake: "+err.Error())
		return 1
	}
	return 0
}
