// Package proxy forwards dashboard API requests to the upstream backend
// service and relays its responses.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Relay is an HTTP client bound to the backend base URL
type Relay struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Response is the upstream's answer, read in full
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the upstream answered with a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// New creates a relay for the given backend base URL. Every forwarded
// request is bounded by the timeout; the upstream has no say in how long
// we wait.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Relay {
	return &Relay{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SetHTTPClient sets a custom HTTP client
func (r *Relay) SetHTTPClient(httpClient *http.Client) {
	r.httpClient = httpClient
}

// Forward sends a single request to the backend at the given path,
// carrying the caller's Cookie header and an optional JSON body. One
// attempt, no retry.
func (r *Relay) Forward(ctx context.Context, method, path, cookie string, body any) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	r.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Forwarded request to backend")

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}
