package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SourceExt is the extension the upload endpoint accepts.
const SourceExt = ".cps"

// Upload is a file accepted by the upload endpoint.
type Upload struct {
	Filename string
	Code     string
}

// Uploader posts source files to the service's upload endpoint.
type Uploader struct {
	base   string
	client *http.Client
	log    *slog.Logger
}

func NewUploader(baseURL string, timeout time.Duration, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Uploader{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

// UploadFile reads path and uploads it.
func (u *Uploader) UploadFile(ctx context.Context, path string) (*Upload, error) {
	if !strings.EqualFold(filepath.Ext(path), SourceExt) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return u.Upload(ctx, filepath.Base(path), data)
}

// Upload sends data as a multipart "file" field. The response must carry a
// true "ok" flag; anything else is ErrUploadRejected.
func (u *Uploader) Upload(ctx context.Context, name string, data []byte) (*Upload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.base+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	reqID := uuid.New().String()
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", reqID)

	resp, err := u.client.Do(req)
	if err != nil {
		u.log.Warn("upload failed", "request_id", reqID, "file", name, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	var payload struct {
		OK       *bool           `json:"ok"`
		Code     string          `json:"code"`
		Filename string          `json:"filename"`
		Detail   json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadRejected, &HTTPError{Status: resp.StatusCode, Body: snippet(raw)})
	}
	if payload.OK == nil || !*payload.OK {
		reason := strings.Trim(string(payload.Detail), `"`)
		if reason == "" {
			reason = fmt.Sprintf("http status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrUploadRejected, reason)
	}
	u.log.Info("file uploaded", "request_id", reqID, "file", payload.Filename, "bytes", len(payload.Code))
	return &Upload{Filename: payload.Filename, Code: payload.Code}, nil
}
