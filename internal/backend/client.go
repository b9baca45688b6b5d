// Package backend fetches schedule views and the group catalog from the
// scheduling service's REST API.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/horario/internal/schedule"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// ErrEmptyScopeValue is returned when a scoped fetch has no id or name.
var ErrEmptyScopeValue = errors.New("scope value must not be empty")

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the schedule backend and implements schedule.Source.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchView returns the schedule view, pre-filtered by the backend when
// scope is not ScopeAll.
func (c *Client) FetchView(ctx context.Context, scope schedule.Scope) (schedule.View, error) {
	path, err := viewPath(scope)
	if err != nil {
		return schedule.View{}, err
	}

	var view schedule.View
	if err := c.get(ctx, path, &view); err != nil {
		return schedule.View{}, err
	}
	if view.Entries == nil {
		view.Entries = []schedule.Entry{}
	}

	c.logger.Debug("fetched schedule view",
		zap.Stringer("scope", scope),
		zap.Int("entries", len(view.Entries)),
		zap.Int("total", view.TotalAssignments),
	)
	return view, nil
}

// FetchGroups returns the group catalog.
func (c *Client) FetchGroups(ctx context.Context) ([]schedule.Group, error) {
	var groups []schedule.Group
	if err := c.get(ctx, "/api/groups", &groups); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []schedule.Group{}
	}

	c.logger.Debug("fetched groups", zap.Int("count", len(groups)))
	return groups, nil
}

// viewPath maps a scope to its endpoint, escaping the path value.
func viewPath(scope schedule.Scope) (string, error) {
	const base = "/api/schedule/view"

	var segment string
	switch scope.Kind {
	case schedule.ScopeAll:
		return base, nil
	case schedule.ScopeGroup:
		segment = "group"
	case schedule.ScopeTeacher:
		segment = "teacher"
	case schedule.ScopeRoom:
		segment = "room"
	default:
		return "", fmt.Errorf("unknown scope kind %d", scope.Kind)
	}

	if strings.TrimSpace(scope.Value) == "" {
		return "", fmt.Errorf("%s scope: %w", segment, ErrEmptyScopeValue)
	}
	return base + "/" + segment + "/" + url.PathEscape(scope.Value), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "horario/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request finished",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
