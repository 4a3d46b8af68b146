// Package httpclient provides the HTTP helper used by the API suites and
// the health check. Requests are rate limited so API tests stay polite
// against shared environments.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client wraps a base URL with JSON helpers and a request rate limiter.
type Client struct {
	baseURL    string
	http       *http.Client
	limiter    *rate.Limiter
	production bool
}

// New creates a client for the given base URL. In production mode error
// messages omit response bodies so raw payloads never reach shared CI logs.
func New(baseURL string, timeout time.Duration, production bool) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
		production: production,
	}
}

// Do issues a request with an optional JSON body.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// GetJSON issues a GET request and decodes a 2xx JSON response into dest.
func (c *Client) GetJSON(ctx context.Context, path string, dest interface{}) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(http.MethodGet, path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// PostJSON issues a POST request with a JSON body and decodes a 2xx JSON
// response into dest. dest may be nil when the response body is irrelevant.
func (c *Client) PostJSON(ctx context.Context, path string, body, dest interface{}) error {
	resp, err := c.Do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(http.MethodPost, path, resp)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// statusError builds an error for a non-2xx response. Outside production
// the first part of the body is included to speed up debugging.
func (c *Client) statusError(method, path string, resp *http.Response) error {
	if c.production {
		return fmt.Errorf("%s %s returned status %d", method, path, resp.StatusCode)
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(body)))
}
