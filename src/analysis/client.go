package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transport sends one analysis request. Implementations return an error
// wrapping ErrTransport or ErrDecode when no result could be obtained.
type Transport interface {
	Analyze(ctx context.Context, req Request) (*Result, error)
}

const maxResponseBytes = 32 << 20

// HTTPTransport talks to the analysis service over HTTP.
type HTTPTransport struct {
	base   string
	client *http.Client
	log    *slog.Logger
}

// NewHTTPTransport returns a transport for the service at baseURL. A zero
// timeout means requests wait until the service answers.
func NewHTTPTransport(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPTransport {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HTTPTransport{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

func (t *HTTPTransport) Analyze(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", ErrTransport, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.base+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	reqID := uuid.New().String()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.log.Warn("analysis request failed", "request_id", reqID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}
	t.log.Debug("analysis response",
		"request_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed", time.Since(start))

	// The service answers 422 and 500 with a regular result body. Any other
	// object on an error status (a proxy page, {"detail": ...}) is a failure.
	obj, err := decodeObject(raw)
	if resp.StatusCode >= 300 && (err != nil || !isResultObject(obj)) {
		return nil, fmt.Errorf("%w: %w", ErrDecode, &HTTPError{Status: resp.StatusCode, Body: snippet(raw)})
	}
	if err != nil {
		return nil, err
	}
	return resultFrom(obj), nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "…"
	}
	return s
}
