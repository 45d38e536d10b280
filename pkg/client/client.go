// Package client provides a typed HTTP client for the calcd service.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an HTTP client for a running calcd server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a new client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the service. Connection-level
// failures (service unreachable) are returned as plain errors, never as
// APIError.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("calcd: %s (status %d)", e.Message, e.Status)
}

// resultResponse mirrors the arithmetic route response body.
type resultResponse struct {
	Result int64 `json:"result"`
}

// Add returns a + b as computed by the service.
func (c *Client) Add(ctx context.Context, a, b int64) (int64, error) {
	return c.result(ctx, "add", a, b)
}

// Subtract returns a - b as computed by the service.
func (c *Client) Subtract(ctx context.Context, a, b int64) (int64, error) {
	return c.result(ctx, "subtract", a, b)
}

// Multiply returns a * b as computed by the service.
func (c *Client) Multiply(ctx context.Context, a, b int64) (int64, error) {
	return c.result(ctx, "multiply", a, b)
}

func (c *Client) result(ctx context.Context, op string, a, b int64) (int64, error) {
	var body resultResponse
	status, err := c.GetJSON(ctx, fmt.Sprintf("/%s/%d/%d", op, a, b), &body)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d for %s", status, op)
	}
	return body.Result, nil
}

// Greeting fetches the root greeting mapping.
func (c *Client) Greeting(ctx context.Context) (map[string]string, error) {
	var greeting map[string]string
	status, err := c.GetJSON(ctx, "/", &greeting)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for greeting", status)
	}
	return greeting, nil
}

// Healthz checks the liveness probe.
func (c *Client) Healthz(ctx context.Context) error {
	status, err := c.GetJSON(ctx, "/healthz", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("service unhealthy: status %d", status)
	}
	return nil
}

// GetJSON issues a GET for path and decodes a 2xx JSON body into v (when v
// is non-nil). Non-2xx responses are returned as *APIError. The returned
// status is the HTTP status code.
func (c *Client) GetJSON(ctx context.Context, path string, v any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, c.parseError(resp)
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// parseError extracts the JSON error payload from a non-2xx response.
func (c *Client) parseError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// WaitForReady polls the root endpoint until the service answers or the
// timeout elapses. Use this instead of a fixed startup delay.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := c.Greeting(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
			// retry
		}
	}
	return fmt.Errorf("timeout waiting for service at %s after %v", c.baseURL, timeout)
}
