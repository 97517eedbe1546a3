// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFiles() []UploadFile {
	return []UploadFile{
		{Name: "report.pdf", MediaType: "application/pdf", Data: bytes.Repeat([]byte("p"), 2048)},
		{Name: "notes.txt", MediaType: "text/plain", Data: []byte("plain text notes")},
	}
}

func TestUploadDocuments(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rag/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		parts := r.MultipartForm.File["files"]
		require.Len(t, parts, 2)
		assert.Equal(t, "report.pdf", parts[0].Filename)
		assert.Equal(t, "application/pdf", parts[0].Header.Get("Content-Type"))
		assert.Equal(t, "notes.txt", parts[1].Filename)
		assert.Equal(t, "text/plain", parts[1].Header.Get("Content-Type"))

		w.Write([]byte(`{"processed_files":{"report.pdf":12,"notes.txt":3},"total_chunks":15}`))
	})

	result, err := client.UploadDocuments(context.Background(), testFiles(), nil)
	require.NoError(t, err)
	assert.Equal(t, 15, result.TotalChunks)
	assert.Equal(t, 12, result.ProcessedFiles["report.pdf"])
	assert.Equal(t, 3, result.ProcessedFiles["notes.txt"])
	assert.Empty(t, result.Errors)
}

func TestUploadProgressReachesTotal(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"processed_files":{"report.pdf":1},"total_chunks":1}`))
	})

	var mu sync.Mutex
	var lastSent, total int64
	monotone := true

	_, err := client.UploadDocuments(context.Background(), testFiles(), func(sent, tot int64) {
		mu.Lock()
		defer mu.Unlock()
		if sent < lastSent {
			monotone = false
		}
		lastSent = sent
		total = tot
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, monotone, "progress must never decrease")
	assert.Equal(t, total, lastSent, "final progress must equal the total")
	assert.Positive(t, total)
}

// A 2xx reply without processed_files violates the contract: the server
// must report what it indexed.
func TestUploadMissingProcessedFiles(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_chunks":5}`))
	})

	_, err := client.UploadDocuments(context.Background(), testFiles(), nil)
	require.Error(t, err)

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrorTypeProtocol, ce.Type)
	assert.Equal(t, "Invalid server response", ce.Message)
}

func TestUploadPartialErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"processed_files":{"notes.txt":3},"total_chunks":3,"errors":["report.pdf: corrupt"]}`))
	})

	result, err := client.UploadDocuments(context.Background(), testFiles(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"report.pdf: corrupt"}, result.Errors)
	assert.Len(t, result.ProcessedFiles, 1)
}

func TestUploadDetailPassthrough(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"No valid files"}`))
	})

	_, err := client.UploadDocuments(context.Background(), testFiles(), nil)
	require.Error(t, err)

	var ce *ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "No valid files", ce.Message)
}

func TestUploadEmptyBatchRejected(t *testing.T) {
	client := NewClient("http://localhost:0")
	_, err := client.UploadDocuments(context.Background(), nil, nil)
	require.Error(t, err)
}
