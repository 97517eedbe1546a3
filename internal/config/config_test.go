// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Upload.MaxFileBytes != 10*1024*1024 {
		t.Errorf("MaxFileBytes = %d, want 10 MiB", cfg.Upload.MaxFileBytes)
	}
	if cfg.UI.MaxInputLen != 1000 {
		t.Errorf("MaxInputLen = %d, want 1000", cfg.UI.MaxInputLen)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q, want default", cfg.Server.BaseURL)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
base_url = "http://example.com:9000"
request_timeout_sec = 30

[ui]
default_mode = "rag"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://example.com:9000" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.RequestTimeoutSec != 30 {
		t.Errorf("RequestTimeoutSec = %d, want 30", cfg.Server.RequestTimeoutSec)
	}
	// Unset fields keep defaults
	if cfg.Server.UploadTimeoutSec != 300 {
		t.Errorf("UploadTimeoutSec = %d, want default 300", cfg.Server.UploadTimeoutSec)
	}
	if cfg.UI.DefaultMode != "rag" {
		t.Errorf("DefaultMode = %q, want rag", cfg.UI.DefaultMode)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("INTAKE_SERVER_URL", "http://override:1234")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://override:1234" {
		t.Errorf("BaseURL = %q, want env override", cfg.Server.BaseURL)
	}
}

func TestValidateRejectsBadMode(t *testing.T) {
	cfg := Default()
	cfg.UI.DefaultMode = "hybrid"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid default_mode")
	}
}

func TestValidateRejectsBadTimeout(t *testing.T) {
	cfg := Default()
	cfg.Server.RequestTimeoutSec = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}
}
