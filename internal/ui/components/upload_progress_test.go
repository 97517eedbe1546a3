// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "testing"

func TestUploadProgressLifecycle(t *testing.T) {
	p := NewUploadProgress()
	if p.Active() {
		t.Error("new progress must be inactive")
	}
	if p.View() != "" {
		t.Error("inactive progress must render empty")
	}

	p.Start(3)
	if !p.Active() || p.Percent() != 0 {
		t.Errorf("after Start: active=%v percent=%d", p.Active(), p.Percent())
	}
	if p.View() == "" {
		t.Error("active progress must render")
	}

	p.Stop()
	if p.Active() || p.Percent() != 0 {
		t.Error("Stop must release the indicator")
	}
}

func TestUploadProgressClamped(t *testing.T) {
	p := NewUploadProgress()
	p.Start(1)

	p.SetBytes(500, 1000)
	if p.Percent() != 50 {
		t.Errorf("percent = %d, want 50", p.Percent())
	}

	// Over-reporting clamps to 100
	p.SetBytes(2000, 1000)
	if p.Percent() != 100 {
		t.Errorf("percent = %d, want 100", p.Percent())
	}
}

func TestUploadProgressMonotone(t *testing.T) {
	p := NewUploadProgress()
	p.Start(1)

	p.SetBytes(800, 1000)
	p.SetBytes(300, 1000) // out-of-order update must not regress
	if p.Percent() != 80 {
		t.Errorf("percent = %d, want 80 (no regression)", p.Percent())
	}
}

func TestUploadProgressIgnoredWhenInactive(t *testing.T) {
	p := NewUploadProgress()
	p.SetBytes(500, 1000)
	if p.Percent() != 0 {
		t.Errorf("inactive progress accepted bytes: %d", p.Percent())
	}
}

func TestUploadProgressZeroTotal(t *testing.T) {
	p := NewUploadProgress()
	p.Start(1)
	p.SetBytes(10, 0)
	if p.Percent() != 0 {
		t.Errorf("zero total must not move the bar, got %d", p.Percent())
	}
}
