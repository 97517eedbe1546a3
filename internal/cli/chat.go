// chat.go - Interactive chat command handler for intake CLI.
//
// Handles "intake chat", a liner-based REPL against the flow or rag
// engine for terminals where the full TUI is unwanted.
//
// Examples:
//   intake chat                Start a flow conversation
//   intake chat --mode rag     Ask questions about uploaded documents
//
// Interactive commands:
//   /new       Start a fresh session
//   /status    Show session state
//   /quit      Exit (also Ctrl+D)
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/intake-tui/internal/api"
	"github.com/jeranaias/intake-tui/internal/config"
	"github.com/jeranaias/intake-tui/internal/util"
)

// ChatCLI provides input history and line editing for the REPL.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates the REPL input with history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := os.UserHomeDir()
	if err != nil {
		dir = os.TempDir()
	} else {
		dir = filepath.Join(dir, ".intake")
	}
	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(dir, "chat_history"),
	}
	c.loadHistory()
	return c
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// Close persists history and restores the terminal.
func (c *ChatCLI) Close() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0o755); err == nil {
		if f, err := os.Create(c.historyFile); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// ReadInput reads one line, recording non-empty input in history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// runChat runs the interactive REPL.
func runChat(client *api.Client, cfg *config.Config, parser *ArgParser) int {
	mode := parser.Flag("mode")
	if mode == "" {
		mode = cfg.UI.DefaultMode
	}
	if mode == "" {
		mode = "flow"
	}
	if mode != "flow" && mode != "rag" {
		fmt.Fprintln(os.Stderr, errorStyle.Render("mode must be flow or rag"))
		return 1
	}

	ctx := context.Background()
	if err := client.CheckHealth(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Backend not reachable. Start the API and refresh."))
		return 1
	}

	start, err := client.StartSession(ctx, mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		return 1
	}
	sessionID := start.SessionID

	fmt.Println(infoStyle.Render("intake chat (" + mode + " mode). /quit to exit."))
	fmt.Println()
	displayResponse(start.Message)

	repl := NewChatCLI()
	defer repl.Close()

	for {
		input, err := repl.ReadInput(promptStyle.Render("> "))
		if err != nil {
			// Ctrl+D or Ctrl+C ends the session
			fmt.Println()
			return 0
		}

		text := strings.TrimSpace(input)
		switch {
		case text == "":
			continue
		case text == "/quit" || text == "/q":
			return 0
		case text == "/new":
			fresh, err := client.StartSession(ctx, mode)
			if err != nil {
				fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
				continue
			}
			sessionID = fresh.SessionID
			displayResponse(fresh.Message)
			continue
		case text == "/status":
			fmt.Println(infoStyle.Render(fmt.Sprintf("server %s  mode %s  session %s",
				client.BaseURL(), mode, sessionID)))
			continue
		case strings.HasPrefix(text, "/"):
			fmt.Println(infoStyle.Render("commands: /new /status /quit"))
			continue
		}

		if util.RuneLen(text) > cfg.UI.MaxInputLen {
			fmt.Fprintln(os.Stderr, errorStyle.Render(
				fmt.Sprintf("Message too long (max %d characters).", cfg.UI.MaxInputLen)))
			continue
		}

		result, err := client.SendMessage(ctx, mode, sessionID, text)
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
			continue
		}

		displayResponse(result.Message)

		if result.Kind == api.TurnCompleted {
			printCompletionSummary(result.Summary)
			fmt.Println(infoStyle.Render("Flow complete. /new to start another session."))
		}
	}
}

// printCompletionSummary prints the collected fields, skipping
// bookkeeping keys, matching the TUI summary panel.
func printCompletionSummary(summary map[string]any) {
	fmt.Println(successStyle.Render("Your Information Summary:"))
	for _, line := range summaryLines(summary) {
		fmt.Println("  " + line)
	}
}

// summaryLines formats the displayable summary fields. Empty and
// bookkeeping keys are skipped.
func summaryLines(summary map[string]any) []string {
	lines := make([]string, 0, len(summary))
	for k, v := range summary {
		if k == "" || k == "session_id" || k == "completed_at" {
			continue
		}
		label := strings.ToUpper(k[:1]) + k[1:]
		lines = append(lines, fmt.Sprintf("%s: %v", label, v))
	}
	return lines
}
