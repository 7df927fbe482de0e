// Package remote is the HTTP client for the TrekZone service. A Client
// implements both auth.IdentityProvider and store.Table.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/DKS2424/Travel/internal/api"
	"github.com/DKS2424/Travel/internal/domain"
)

// Config names the service. Both fields are required.
type Config struct {
	URL     string
	AnonKey string
}

// Configured reports whether both values are present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.URL) != "" && strings.TrimSpace(c.AnonKey) != ""
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSessionStore replaces the default in-memory session store.
func WithSessionStore(s SessionStore) Option {
	return func(c *Client) { c.sessions = s }
}

// WithLogger sets the logger for session persistence problems.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client talks to the TrekZone HTTP API. Safe for concurrent use.
type Client struct {
	base     *url.URL
	anonKey  string
	http     *http.Client
	sessions SessionStore
	log      *slog.Logger

	mu        sync.Mutex
	listeners map[int]func(*domain.Session)
	nextID    int
}

// New returns a Client for cfg. It returns ErrNotConfigured when either
// value is missing.
func New(cfg Config, opts ...Option) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.URL), "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("remote.New: invalid service URL %q", cfg.URL)
	}

	c := &Client{
		base:      base,
		anonKey:   strings.TrimSpace(cfg.AnonKey),
		http:      http.DefaultClient,
		sessions:  NewMemorySessionStore(),
		log:       slog.Default(),
		listeners: make(map[int]func(*domain.Session)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request describes one API call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// auth attaches the stored access token as a bearer credential.
	auth bool
}

// do performs req and decodes a 2xx JSON body into out (if non-nil).
// Non-2xx responses become *Error.
func (c *Client) do(ctx context.Context, req request, out any) error {
	u := c.base.JoinPath(req.path)
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("remote: encode %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("remote: build %s %s: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("apikey", c.anonKey)
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.auth {
		token, err := c.accessToken()
		if err != nil {
			return err
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("remote: decode %s %s: %w", req.method, req.path, err)
	}
	return nil
}

// decodeError turns a failed response into *Error. Bodies that are not the
// API's error shape fall back to the status text.
func decodeError(resp *http.Response) error {
	e := &Error{Status: resp.StatusCode}
	var body api.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err == nil {
		e.Code = body.Error.Code
		e.Message = body.Error.Message
	}
	return e
}

// accessToken returns the stored token or an unauthorized *Error when nobody
// is signed in.
func (c *Client) accessToken() (string, error) {
	s, err := c.sessions.Load()
	if err != nil {
		return "", fmt.Errorf("remote: load session: %w", err)
	}
	if s == nil {
		return "", &Error{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Not signed in"}
	}
	return s.AccessToken, nil
}
