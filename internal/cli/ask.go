// ask.go - Single question command handler for intake CLI.
//
// Handles "intake ask", which starts a throwaway rag session, sends one
// question, prints the answer, and exits.
//
// Examples:
//   intake ask "What does the contract say about termination?"
//   intake ask --server http://host:8000 "Summarize the uploaded docs"
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/jeranaias/intake-tui/internal/api"
)

// markdownRenderer renders answers for terminal display.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown, falling back to the raw text.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse prints a response, rendering markdown only on a TTY
// so piped output stays clean.
func displayResponse(response string) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(renderMarkdown(response))
		return
	}
	fmt.Println(response)
}

// runAsk sends one rag question and prints the answer.
func runAsk(client *api.Client, parser *ArgParser) int {
	question := strings.TrimSpace(strings.Join(parser.Positional(), " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, errorStyle.Render("usage: intake ask <question>"))
		return 1
	}

	ctx := context.Background()
	if err := client.CheckHealth(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Backend not reachable. Start the API and refresh."))
		return 1
	}

	start, err := client.StartSession(ctx, "rag")
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		return 1
	}

	result, err := client.SendMessage(ctx, "rag", start.SessionID, question)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		return 1
	}

	displayResponse(result.Message)
	return 0
}
