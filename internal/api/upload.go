// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// UploadFile is one admitted document ready to send.
type UploadFile struct {
	Name      string
	MediaType string
	Data      []byte
}

// ProgressFunc receives upload progress as bytes sent out of total.
// Called from the HTTP transport goroutine; implementations must be
// safe to call concurrently with the UI loop.
type ProgressFunc func(sent, total int64)

// =============================================================================
// PROGRESS READER
// =============================================================================

// progressReader wraps the request body and reports bytes consumed by
// the transport. Percent mapping and clamping happen at the UI layer.
type progressReader struct {
	r     io.Reader
	total int64
	sent  atomic.Int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		sent := p.sent.Add(int64(n))
		if p.fn != nil {
			p.fn(sent, p.total)
		}
	}
	return n, err
}

// =============================================================================
// UPLOAD
// =============================================================================

// UploadDocuments sends the admitted batch as one multipart request to
// POST /rag/upload, every file under the form field "files". Progress is
// reported through fn as the transport consumes the body.
//
// A 2xx response without processed_files is a protocol violation and
// returns an error; the server must say what it indexed.
func (c *Client) UploadDocuments(ctx context.Context, files []UploadFile, fn ProgressFunc) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, &ClientError{Type: ErrorTypeProtocol, Message: "no files to upload"}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="files"; filename="%s"`, escapeQuotes(f.Name)))
		header.Set("Content-Type", f.MediaType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, &ClientError{Type: ErrorTypeProtocol, Message: "failed to build upload", Cause: err}
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, &ClientError{Type: ErrorTypeProtocol, Message: "failed to build upload", Cause: err}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, &ClientError{Type: ErrorTypeProtocol, Message: "failed to build upload", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	body := &progressReader{
		r:     bytes.NewReader(buf.Bytes()),
		total: int64(buf.Len()),
		fn:    fn,
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rag/upload", body)
	if err != nil {
		return nil, &ClientError{Type: ErrorTypeConnection, Message: "invalid request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.ContentLength = int64(buf.Len())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.parseError(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrorTypeConnection, Message: "failed to read response", Cause: err}
	}

	var result UploadResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &ClientError{Type: ErrorTypeProtocol, Message: "Invalid server response", Cause: err}
	}
	if result.ProcessedFiles == nil {
		return nil, &ClientError{Type: ErrorTypeProtocol, Message: "Invalid server response", Cause: ErrInvalidResponse}
	}
	return &result, nil
}

// escapeQuotes sanitizes filenames for the Content-Disposition header.
func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
