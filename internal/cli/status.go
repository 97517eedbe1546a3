// status.go - Backend status command handler for intake CLI.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/intake-tui/internal/api"
	"github.com/jeranaias/intake-tui/internal/config"
	"github.com/jeranaias/intake-tui/internal/ui/styles"
)

// runStatus probes the backend and reports connectivity.
func runStatus(client *api.Client, cfg *config.Config) int {
	fmt.Printf("Server: %s\n", cfg.Server.BaseURL)

	if err := client.CheckHealth(context.Background()); err != nil {
		fmt.Println(errorStyle.Render(styles.StatusIndicators.Error + " Backend not reachable"))
		fmt.Println(infoStyle.Render("  " + err.Error()))
		return 1
	}

	fmt.Println(successStyle.Render(styles.StatusIndicators.Success + " Backend healthy"))
	return 0
}
