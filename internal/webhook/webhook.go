// Package webhook posts chat messages to the configured webhook and extracts
// the textual reply from whatever shape the endpoint answers with.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	herrors "github.com/hookchat/hookchat/internal/errors"
	"github.com/hookchat/hookchat/internal/logger"
)

// DefaultTimeout bounds a request when no timeout is configured
const DefaultTimeout = 30 * time.Second

// FallbackReply is used when a successful response carries no usable text
const FallbackReply = "Sorry, I couldn't process that."

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 1 << 20

// ReplyFields are the object fields checked for reply text, in priority order.
var ReplyFields = []string{"output", "message", "text", "response"}

// Request is the JSON body posted for each message
type Request struct {
	Message string `json:"message"`
}

// Client sends messages to a single webhook endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a client for url.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint
func (c *Client) URL() string {
	return c.url
}

// Send posts text and returns the extracted reply. Transport failures,
// non-2xx statuses and timeouts are all returned as errors.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	log := logger.ComponentLogger("Webhook")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(Request{Message: text})
	if err != nil {
		return "", herrors.WebhookRequestFailed(c.url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", herrors.WebhookRequestFailed(c.url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain;q=0.9, */*;q=0.8")

	start := time.Now()
	log.Debug("posting message", "url", c.url, "bytes", len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("request timed out", "after", time.Since(start), "timeout", c.timeout)
			return "", herrors.WebhookTimeout(c.url, err)
		}
		log.Error("request failed", "error", err)
		return "", herrors.WebhookRequestFailed(c.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", herrors.WebhookTimeout(c.url, err)
		}
		return "", herrors.WebhookRequestFailed(c.url, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("webhook returned error status", "status", resp.StatusCode, "body", truncate(string(body), 200))
		return "", herrors.WebhookStatus(c.url, resp.StatusCode)
	}

	if len(body) > maxResponseBytes {
		log.Error("response too large", "limit", maxResponseBytes)
		return "", herrors.WebhookRequestFailed(c.url, fmt.Errorf("response body exceeds %d bytes", maxResponseBytes))
	}

	log.Debug("received response", "status", resp.StatusCode, "elapsed", time.Since(start), "body", truncate(string(body), 500))
	return ExtractReply(body), nil
}

// ExtractReply pulls reply text out of a response body:
//   - a JSON string is used as-is
//   - a JSON object yields the first non-empty string, non-zero number or
//     true among ReplyFields
//   - a body that is not JSON is treated as plain text
//
// Anything else, or an empty result, yields FallbackReply.
func ExtractReply(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return FallbackReply
	}

	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return string(trimmed)
	}

	switch v := decoded.(type) {
	case string:
		if v == "" {
			return FallbackReply
		}
		return v
	case map[string]any:
		for _, field := range ReplyFields {
			if s, ok := fieldText(v[field]); ok {
				return s
			}
		}
	}
	return FallbackReply
}

// fieldText renders a scalar reply field. Empty strings, zero, false, null
// and nested values do not count as a reply.
func fieldText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, s != ""
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), s != 0
	case bool:
		return "true", s
	}
	return "", false
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
