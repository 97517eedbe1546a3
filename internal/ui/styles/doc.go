// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the adaptive color palette, status indicators,
// and lip gloss style definitions used across the intake-tui interface.
package styles
