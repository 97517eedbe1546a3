// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"os"
	"path/filepath"
	"testing"
)

const maxBytes = 10 * 1024 * 1024

func TestMediaTypeFor(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"report.pdf", MediaTypePDF, true},
		{"REPORT.PDF", MediaTypePDF, true},
		{"notes.txt", MediaTypeText, true},
		{"image.png", "", false},
		{"archive.tar.gz", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		got, ok := MediaTypeFor(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MediaTypeFor(%q) = (%q, %v), want (%q, %v)",
				tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFilterSizeBoundary(t *testing.T) {
	atLimit := FileMeta{Name: "big.pdf", Size: maxBytes, MediaType: MediaTypePDF}
	overLimit := FileMeta{Name: "huge.pdf", Size: maxBytes + 1, MediaType: MediaTypePDF}

	admitted, rejected := Filter([]FileMeta{atLimit, overLimit}, maxBytes)

	if len(admitted) != 1 || admitted[0].Name != "big.pdf" {
		t.Errorf("exactly-at-limit file must be admitted, got %v", admitted)
	}
	if len(rejected) != 1 || rejected[0].Name != "huge.pdf" {
		t.Errorf("one-byte-over file must be rejected, got %v", rejected)
	}
}

func TestFilterRejectsWrongType(t *testing.T) {
	candidates := []FileMeta{
		{Name: "ok.txt", Size: 100, MediaType: MediaTypeText},
		{Name: "bad.png", Size: 100, MediaType: ""},
		{Name: "bad.docx", Size: 100, MediaType: "application/vnd.openxmlformats"},
	}

	admitted, rejected := Filter(candidates, maxBytes)
	if len(admitted) != 1 || admitted[0].Name != "ok.txt" {
		t.Errorf("admitted = %v, want only ok.txt", admitted)
	}
	if len(rejected) != 2 {
		t.Errorf("rejected = %v, want 2 files", rejected)
	}
}

func TestFilterWholeBatchInadmissible(t *testing.T) {
	candidates := []FileMeta{
		{Name: "a.png", Size: 100},
		{Name: "b.jpg", Size: 100},
	}
	admitted, rejected := Filter(candidates, maxBytes)
	if len(admitted) != 0 {
		t.Errorf("admitted = %v, want none", admitted)
	}
	if len(rejected) != 2 {
		t.Errorf("rejected = %v, want all", rejected)
	}
}

func TestStatAndLoadAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello docs"), 0o644); err != nil {
		t.Fatal(err)
	}

	meta, err := Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if meta.Name != "notes.txt" || meta.MediaType != MediaTypeText || meta.Size != 10 {
		t.Errorf("unexpected meta: %+v", meta)
	}

	files, err := LoadAll([]FileMeta{meta})
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(files) != 1 || string(files[0].Data) != "hello docs" {
		t.Errorf("unexpected load result: %+v", files)
	}
}

func TestStatMissingFile(t *testing.T) {
	if _, err := Stat(filepath.Join(t.TempDir(), "nope.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStatDirectory(t *testing.T) {
	if _, err := Stat(t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
}
