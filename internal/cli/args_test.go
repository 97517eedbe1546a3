// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

func TestArgParserFlags(t *testing.T) {
	p := NewArgParser([]string{"--server", "http://x:8000", "--mode=rag", "--json", "what", "is", "this"})

	if got := p.Flag("server"); got != "http://x:8000" {
		t.Errorf("server = %q", got)
	}
	if got := p.Flag("mode"); got != "rag" {
		t.Errorf("mode = %q", got)
	}
	if !p.BoolFlag("json") {
		t.Error("json bool flag not set")
	}
	pos := p.Positional()
	if len(pos) != 3 || pos[0] != "what" {
		t.Errorf("positional = %v", pos)
	}
}

func TestArgParserEmpty(t *testing.T) {
	p := NewArgParser(nil)
	if p.Flag("server") != "" || p.BoolFlag("json") || len(p.Positional()) != 0 {
		t.Error("empty parser must be empty")
	}
}

func TestArgParserShortFlag(t *testing.T) {
	p := NewArgParser([]string{"-v", "question"})
	if !p.BoolFlag("v") {
		t.Error("short bool flag not set")
	}
	if len(p.Positional()) != 1 {
		t.Errorf("positional = %v", p.Positional())
	}
}
