// Package rtm talks to the Remember The Milk REST API: request signing,
// response envelope decoding, and typed wrappers for the auth, timeline,
// list, and task method families.
package rtm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dwaring87/rtm-api/internal/ports"
)

const (
	// DefaultEndpoint is the REST endpoint every method call goes through.
	DefaultEndpoint = "https://api.rememberthemilk.com/services/rest/"
	// DefaultAuthBase is the browser URL for the auth handshake.
	DefaultAuthBase = "https://www.rememberthemilk.com/services/auth/"
)

// Client is a signed-request client for one API key. It is safe for
// concurrent use; outbound calls are spaced by the configured scheduler so
// the service's per-key rate limit is respected without callers thinking
// about timing.
type Client struct {
	apiKey   string
	secret   string
	token    string
	userID   int64
	endpoint string
	authBase string
	http     *http.Client
	sched    ports.Scheduler
	logger   *slog.Logger

	mu       sync.Mutex
	timeline string
}

var (
	_ ports.TaskService = (*Client)(nil)
	_ ports.ListService = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithEndpoint points the client at a different REST endpoint. Used by tests
// and by nothing else.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithScheduler installs the request scheduler that gates outbound calls.
func WithScheduler(s ports.Scheduler) Option {
	return func(c *Client) { c.sched = s }
}

// WithLogger installs a logger for request-level debug logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithAuth pre-loads a stored token and the user it belongs to.
func WithAuth(token string, userID int64) Option {
	return func(c *Client) {
		c.token = token
		c.userID = userID
	}
}

// New creates a client for the given API key and shared secret.
func New(apiKey, secret string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		secret:   secret,
		endpoint: DefaultEndpoint,
		authBase: DefaultAuthBase,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuth swaps in a token after the handshake completes. Any cached
// timeline belonged to the old session and is dropped.
func (c *Client) SetAuth(token string, userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.userID = userID
	c.timeline = ""
}

// call performs one signed method call and returns the raw rsp object after
// checking its status. The scheduler is consulted first, so every call
// (including retries by callers) pays its way through the rate gate.
func (c *Client) call(ctx context.Context, method string, params map[string]string) (json.RawMessage, error) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("method", method)
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")
	if c.token != "" {
		q.Set("auth_token", c.token)
	}
	q.Set("api_sig", sign(c.secret, q))

	if c.sched != nil {
		if err := c.sched.Wait(ctx, c.userID); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", method, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "api call",
		"method", method,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", method, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", method, err)
	}

	var st status
	if err := json.Unmarshal(env.Rsp, &st); err != nil {
		return nil, fmt.Errorf("%s: decode status: %w", method, err)
	}
	if st.Stat != "ok" {
		if st.Err != nil {
			return nil, fmt.Errorf("%s: %w", method, st.Err)
		}
		return nil, fmt.Errorf("%s: service returned stat %q", method, st.Stat)
	}

	return env.Rsp, nil
}
