// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package upload implements client-side admission of documents before
// they are sent to the backend: media type and size checks happen here,
// so inadmissible files never reach the wire.
package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/intake-tui/internal/api"
)

// MediaTypePDF and MediaTypeText are the only admissible document types.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeText = "text/plain"
)

// FileMeta describes a candidate file before admission.
type FileMeta struct {
	Name      string
	Path      string
	Size      int64
	MediaType string
}

// MediaTypeFor maps a filename to its document media type.
// Only PDF and plain text are recognized.
func MediaTypeFor(name string) (string, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MediaTypePDF, true
	case ".txt":
		return MediaTypeText, true
	}
	return "", false
}

// Stat builds the metadata for one candidate path.
// The media type is resolved from the extension; an unrecognized
// extension leaves MediaType empty, which Filter rejects.
func Stat(path string) (FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMeta{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return FileMeta{}, fmt.Errorf("%s is a directory", path)
	}
	meta := FileMeta{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
	}
	if mt, ok := MediaTypeFor(meta.Name); ok {
		meta.MediaType = mt
	}
	return meta, nil
}

// Filter splits candidates into admitted and rejected. A file is
// admitted only when its media type is PDF or plain text AND its size
// is at most maxBytes. Exactly at the limit is admitted; one byte over
// is not.
func Filter(candidates []FileMeta, maxBytes int64) (admitted, rejected []FileMeta) {
	for _, f := range candidates {
		if (f.MediaType == MediaTypePDF || f.MediaType == MediaTypeText) && f.Size <= maxBytes {
			admitted = append(admitted, f)
		} else {
			rejected = append(rejected, f)
		}
	}
	return admitted, rejected
}

// LoadAll reads the admitted files into memory for the multipart
// request. Sizes are bounded by Filter, so buffering is acceptable.
func LoadAll(admitted []FileMeta) ([]api.UploadFile, error) {
	files := make([]api.UploadFile, 0, len(admitted))
	for _, f := range admitted {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Path, err)
		}
		files = append(files, api.UploadFile{
			Name:      f.Name,
			MediaType: f.MediaType,
			Data:      data,
		})
	}
	return files, nil
}
