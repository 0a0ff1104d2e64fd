// Package api implements the lab service interfaces against the backend's
// REST and SSE endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/rs/zerolog"
)

// Interface compliance checks.
var (
	_ lab.ChatService           = (*Client)(nil)
	_ lab.UserService           = (*Client)(nil)
	_ lab.ReconstructionService = (*Client)(nil)
	_ lab.LibraryService        = (*Client)(nil)
)

const defaultTimeout = 30 * time.Second

// Client talks to the AI-3D backend. Non-streaming calls share a
// bounded-timeout HTTP client; streaming calls use a separate client with
// no response deadline so the body can be consumed incrementally —
// cancellation flows through the request context instead.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client
	token        func() string
	logger       zerolog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets a custom HTTP client for non-streaming calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the non-streaming request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithTokenSource sets a callback that supplies the current bearer token.
// An empty return value means no Authorization header is attached.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) { c.token = fn }
}

// WithToken sets a static bearer token.
func WithToken(token string) Option {
	return WithTokenSource(func() string { return token })
}

// WithLogger sets the client logger. Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new backend [Client] with the given base URL and options.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: defaultTimeout},
		streamClient: &http.Client{},
		token:        func() string { return "" },
		logger:       zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// envelope is the backend's uniform response wrapper. Code zero is
// success; anything else is a business failure with Message as the
// user-facing reason.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues a JSON request and decodes the envelope's data into out.
// A nil out discards the data payload.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	c.logger.Debug().Str("method", method).Str("path", path).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()

	return decodeEnvelope(resp, out)
}

// doForm issues an application/x-www-form-urlencoded POST.
func (c *Client) doForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()

	return decodeEnvelope(resp, out)
}

// newStreamRequest builds a request whose response body will be consumed
// incrementally.
func (c *Client) newStreamRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "text/event-stream")
	c.authorize(req)
	return req, nil
}

func (c *Client) authorize(req *http.Request) {
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// decodeEnvelope reads the response, maps non-zero envelope codes to
// *lab.APIError, and unmarshals the data payload into out.
func decodeEnvelope(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("api: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		return fmt.Errorf("api: decode response: %w", err)
	}

	if env.Code != 0 {
		return &lab.APIError{Code: env.Code, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("api: decode data: %w", err)
		}
	}
	return nil
}
