package artfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultBaseURL is used when no backend address is configured.
	DefaultBaseURL = "http://localhost:8001"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	contentTypeJSON  = "application/json"
	defaultUserAgent = "artfolio"
	maxErrorBody     = 64 << 10
)

// UnauthorizedHandler is called after the stored credentials were cleared
// because the backend rejected a request with 401 while the caller acted for
// an admin route. loginRoute is where the caller should send the user next.
type UnauthorizedHandler func(ctx context.Context, loginRoute string)

// Client is the shared HTTP core of the public and admin data clients.
// It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	store     CredentialStore
	userAgent string
	log       *log.Logger

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client. Its Timeout is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithUnauthorizedHandler installs h as the 401 handler.
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) {
		c.onUnauthorized = h
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Client for the backend at baseURL. An empty baseURL falls
// back to DefaultBaseURL.
func New(baseURL string, store CredentialStore, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, errors.New("credential store is required")
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: DefaultTimeout},
		store:     store,
		userAgent: defaultUserAgent,
		log:       log.Default().WithPrefix("artfolio"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised backend address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Store returns the credential store the client authenticates from.
func (c *Client) Store() CredentialStore {
	return c.store
}

// SetUnauthorizedHandler replaces the 401 handler.
func (c *Client) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

func (c *Client) unauthorizedHandler() UnauthorizedHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.onUnauthorized
}

// Request describes a single call against the backend.
type Request struct {
	Method string
	Path   string
	// RawQuery is appended verbatim.
	RawQuery string
	// JSON is marshalled as the request body when set.
	JSON any
	// Body is sent as-is with ContentType when JSON is nil.
	Body        io.Reader
	ContentType string
	// Credentials, when set, are used instead of the stored pair.
	Credentials *Credentials
	// Dest receives the decoded response body when non-nil.
	Dest any
}

// Do sends r and decodes the response into r.Dest. Any failure is returned as
// an *Error.
func (c *Client) Do(ctx context.Context, r Request) error {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}
	c.authorize(req, r)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", r.Method, "path", r.Path, "error", err)
		return &Error{Kind: KindNetwork, Method: r.Method, Path: r.Path, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	c.log.Debug("request", "method", r.Method, "path", r.Path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &Error{
			Kind:   kindForStatus(resp.StatusCode),
			Method: r.Method,
			Path:   r.Path,
			Status: resp.StatusCode,
			Detail: parseDetail(body),
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized(ctx)
		}
		return apiErr
	}

	if r.Dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(r.Dest); err != nil {
		return &Error{Kind: KindDecode, Method: r.Method, Path: r.Path, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.Method == "" {
		r.Method = http.MethodGet
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: r.Path, RawQuery: r.RawQuery})

	body := r.Body
	contentType := r.ContentType
	if r.JSON != nil {
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, &Error{Kind: KindValidation, Method: r.Method, Path: r.Path, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(data)
		contentType = contentTypeJSON
	}
	if contentType == "" {
		contentType = contentTypeJSON
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, reqURL.String(), body)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Method: r.Method, Path: r.Path, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// authorize attaches basic auth to admin API requests. Explicit credentials
// win over the stored pair; without either the request goes out anonymous.
func (c *Client) authorize(req *http.Request, r Request) {
	if r.Credentials != nil {
		req.SetBasicAuth(r.Credentials.Username, r.Credentials.Password)
		return
	}
	if !IsAdminPath(r.Path) {
		return
	}
	if creds, ok := c.store.Get(); ok {
		req.SetBasicAuth(creds.Username, creds.Password)
	}
}

// handleUnauthorized expires the admin session when a 401 arrives while the
// caller acts for an admin route. Outside admin routes a 401 is only returned.
func (c *Client) handleUnauthorized(ctx context.Context) {
	route := RouteFromContext(ctx)
	if !IsAdminRoute(route) {
		return
	}
	c.log.Warn("admin credentials rejected, clearing session", "route", route)
	if err := c.store.Clear(); err != nil {
		c.log.Error("failed to clear credentials", "error", err)
	}
	if h := c.unauthorizedHandler(); h != nil {
		h(ctx, RouteAdminLogin)
	}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend url %q has no host", raw)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
