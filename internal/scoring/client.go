package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scorer analyzes one message.
type Scorer interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error)
}

// DefaultMaxResponseBytes caps the body read from the service.
const DefaultMaxResponseBytes = 1 << 20

// Client calls the scoring service over HTTP.
type Client struct {
	url              string
	client           *http.Client
	maxResponseBytes int64
	logger           *zap.Logger
}

// NewClient returns a client for the endpoint url. timeout <= 0 means no
// deadline on the request.
func NewClient(url string, timeout time.Duration, maxResponseBytes int64, logger *zap.Logger) *Client {
	if maxResponseBytes <= 0 {
		maxResponseBytes = DefaultMaxResponseBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	hc := &http.Client{}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{
		url:              url,
		client:           hc,
		maxResponseBytes: maxResponseBytes,
		logger:           logger,
	}
}

// Analyze POSTs req and decodes the result. Every failure is either a
// *TransportError or a *ResponseError.
func (c *Client) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("scoring call failed", zap.String("request_id", requestID), zap.Error(err))
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes+1))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	c.logger.Debug("scoring call complete",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResponseError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(truncate(string(data), 256))}
	}
	if int64(len(data)) > c.maxResponseBytes {
		return nil, &ResponseError{StatusCode: resp.StatusCode, Err: fmt.Errorf("response exceeds %d bytes", c.maxResponseBytes)}
	}

	var result AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &ResponseError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode result: %w", err)}
	}
	return &result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
