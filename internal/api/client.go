// Package api implements the HTTP client for the storefront backend.
// It maps backend error responses onto domain error codes so callers can
// branch on domain.ErrorCode without knowing about HTTP.
package api

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

	"github.com/dukerupert/sif/internal/domain"
)

// TokenSource supplies the current bearer token, or "" when anonymous.
type TokenSource func() string

// Client talks to the storefront backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	token      TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets the bearer token provider for authenticated calls.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger.With("component", "api_client"),
		token:      func() string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorResponse is the backend's error envelope.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// do runs one request/response cycle with the token source's current
// token. A non-nil body is sent as JSON; a non-nil out receives the
// decoded response body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.doWithToken(ctx, method, path, c.token(), body, out)
}

// doWithToken is do with an explicit bearer token, for calls that must
// authenticate before the token source has adopted the session.
func (c *Client) doWithToken(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return wrapInternal(err, "failed to encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return wrapInternal(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapInternal(err, "backend unreachable")
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapInternal(err, "failed to read response")
	}

	if resp.StatusCode >= 400 {
		return c.statusError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return wrapInternal(err, "invalid response body")
		}
	}
	return nil
}

// statusError converts an HTTP failure into a domain-coded error. The
// backend's message is preserved when it sends one.
func (c *Client) statusError(status int, body []byte) error {
	var envelope errorResponse
	message := ""
	if json.Unmarshal(body, &envelope) == nil {
		message = envelope.Error
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}

	return newAPIError(codeForStatus(status), message)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.EINVALID
	case http.StatusUnauthorized:
		return domain.EUNAUTHORIZED
	case http.StatusPaymentRequired:
		return domain.EPAYMENT
	case http.StatusForbidden:
		return domain.EFORBIDDEN
	case http.StatusNotFound:
		return domain.ENOTFOUND
	case http.StatusConflict:
		return domain.ECONFLICT
	case http.StatusGone:
		return domain.EGONE
	case http.StatusRequestEntityTooLarge:
		return domain.ETOOLARGE
	case http.StatusTooManyRequests:
		return domain.ERATELIMIT
	case http.StatusNotImplemented:
		return domain.ENOTIMPL
	default:
		return domain.EINTERNAL
	}
}
