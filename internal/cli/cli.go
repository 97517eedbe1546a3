// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the plain-terminal commands: one-shot
// questions, an interactive REPL, and a backend status check. These
// share the API client with the TUI and work without a TTY.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/intake-tui/internal/api"
	"github.com/jeranaias/intake-tui/internal/config"
	"github.com/jeranaias/intake-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)
)

const usage = `intake - conversational intake client

Usage:
  intake                  Start the TUI (default)
  intake ask <question>   Ask one question in rag mode
  intake chat             Interactive chat (flow mode by default)
  intake status           Check backend connectivity
  intake help             Show this message

Flags:
  --server URL   Backend base URL (overrides config)
  --mode NAME    Chat mode for "chat": flow or rag
  --config PATH  Config file path
`

// Run dispatches a CLI subcommand. Returns the process exit code.
func Run(command string, args []string) int {
	parser := NewArgParser(args)

	cfg, err := config.Load(parser.Flag("config"))
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("config: "+err.Error()))
		return 1
	}
	if server := parser.Flag("server"); server != "" {
		cfg.Server.BaseURL = server
	}
	config.SetGlobal(cfg)

	client := api.NewClient(cfg.Server.BaseURL,
		api.WithTimeouts(cfg.RequestTimeout(), cfg.UploadTimeout(), cfg.HealthTimeout()))

	switch command {
	case "ask":
		return runAsk(client, parser)
	case "chat":
		return runChat(client, cfg, parser)
	case "status":
		return runStatus(client, cfg)
	case "help", "--help", "-h":
		fmt.Print(usage)
		return 0
	}

	fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
	return 1
}
