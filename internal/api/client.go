// Package api implements the HTTP client for the remote productivity service.
// All task, transaction, and auth operations go through here; the server owns
// persistence, AI classification, and aggregation, and every response body is
// the authoritative representation of the entity it describes.
package api

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

	"github.com/google/uuid"

	"tally/internal/log"
)

// Client talks to the remote API. It is safe for concurrent use; the bearer
// token is the only mutable state and is guarded separately so in-flight
// requests never observe a half-written credential.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the given base URL. The timeout bounds each
// request end to end; there is no retry.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.WithComponent(log.ComponentAPI),
	}
}

// SetToken installs the bearer credential used on all subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken drops the bearer credential.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the current bearer credential, or "" when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// doJSON sends a JSON-encoded request and decodes a JSON response into out.
// A nil body sends no payload; a nil out discards the response body.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	return c.do(ctx, method, path, reader, "application/json", out)
}

// doForm sends a form-encoded request (the login contract) and decodes JSON.
func (c *Client) doForm(ctx context.Context, method, path string, form string, out any) error {
	return c.do(ctx, method, path, strings.NewReader(form), "application/x-www-form-urlencoded", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	requestID := uuid.NewString()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.DebugContext(ctx, "API request started",
		log.FieldRequestID, requestID,
		log.FieldMethod, method,
		log.FieldPath, path)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "API request failed",
			log.FieldRequestID, requestID,
			log.FieldMethod, method,
			log.FieldPath, path,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldError, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		c.logger.WarnContext(ctx, "API request rejected",
			log.FieldRequestID, requestID,
			log.FieldMethod, method,
			log.FieldPath, path,
			log.FieldStatusCode, resp.StatusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldError, apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}

	c.logger.DebugContext(ctx, "API request completed",
		log.FieldRequestID, requestID,
		log.FieldMethod, method,
		log.FieldPath, path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	return nil
}
