package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/rendis/flowdeck/pkg/schema"
)

const defaultMaxResponseBody = 10 * 1024 * 1024 // 10MB

// Client performs JSON requests against the workflow server. All mutation
// endpoints accept and return JSON over POST; reads are GET returning JSON.
// The client enforces no timeout of its own: cancellation comes from the
// caller's context, matching the cooperative model where a stalled request
// simply stays pending.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
	maxBody int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the client's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the given server base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     slog.New(slog.NewTextHandler(os.Stderr, nil)),
		maxBody: defaultMaxResponseBody,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get fetches path and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return schema.NewErrorf(schema.ErrCodeTransport, "build request for %s", path).WithCause(err)
	}
	return c.do(req, out)
}

// Post sends body as JSON to path and decodes the JSON response into out.
// Out may be nil when the response body is irrelevant.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return schema.NewErrorf(schema.ErrCodeTransport, "marshal request for %s", path).WithCause(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return schema.NewErrorf(schema.ErrCodeTransport, "build request for %s", path).WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// statusEnvelope is the success/error shape shared by all mutation endpoints.
type statusEnvelope struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// PostExpect posts body to path and verifies the response carries the
// expected status token. Any other shape is an application failure whose
// server-provided message, if present, is surfaced verbatim. When out is
// non-nil the full response is also decoded into it.
func (c *Client) PostExpect(ctx context.Context, path string, body any, want string, out any) error {
	var raw json.RawMessage
	if err := c.Post(ctx, path, body, &raw); err != nil {
		return err
	}
	return checkStatus(raw, want, out)
}

func checkStatus(raw json.RawMessage, want string, out any) error {
	var env statusEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return schema.NewError(schema.ErrCodeApplication, "malformed server response").WithCause(err)
	}
	if env.Status != want {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("unexpected server status %q (want %q)", env.Status, want)
		}
		return schema.NewError(schema.ErrCodeApplication, msg)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return schema.NewError(schema.ErrCodeApplication, "malformed server response").WithCause(err)
		}
	}
	return nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.ErrorContext(req.Context(), "request failed", "url", req.URL.String(), "error", err)
		return schema.NewErrorf(schema.ErrCodeTransport, "error communicating with the server at %s", req.URL.Path).WithCause(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		c.log.ErrorContext(req.Context(), "read response failed", "url", req.URL.String(), "error", err)
		return schema.NewErrorf(schema.ErrCodeTransport, "error reading response from %s", req.URL.Path).WithCause(err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.ErrorContext(req.Context(), "decode response failed", "url", req.URL.String(), "error", err)
		return schema.NewErrorf(schema.ErrCodeTransport, "error parsing response from %s", req.URL.Path).WithCause(err)
	}
	return nil
}
