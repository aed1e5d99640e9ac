// Package client is the Go SDK for the gate pass service. It carries the
// session identity, a per-session destination reference cache and the gate
// pass lifecycle operations the dashboard builds on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 30 * time.Second

// anonymousKey is the cache key used before anyone has logged in.
const anonymousKey = "anonymous"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu      sync.Mutex
	token   string
	session *SessionIdentity

	destinations *DestinationCache
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		HTTPClient:   &http.Client{Timeout: defaultTimeout},
		destinations: NewDestinationCache(),
	}
}

// Session returns the current identity, or nil before login.
func (c *Client) Session() *SessionIdentity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// sessionKey is the cache partition for the current user.
func (c *Client) sessionKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || c.session.Email == "" {
		return anonymousKey
	}
	return c.session.Email
}

// doJSON sends a JSON request and decodes the body into out when non-nil.
// Responses outside 2xx come back as an error carrying the status and body.
func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// error bodies are JSON too; decode what we can so callers can
		// inspect the server's refusal code alongside the status
		if out != nil && len(data) > 0 {
			_ = json.Unmarshal(data, out)
		}
		return &apiError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Body)
}
