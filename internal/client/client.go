// Package client talks to the upstream activities API. It replaces direct
// database access: the roster lives behind three HTTP endpoints and this
// package is the only code that knows their shape.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id on every upstream request.
const RequestIDHeader = "X-Request-ID"

const maxBodyBytes = 1 << 20 // 1 MB

// ErrMalformedResponse is returned when an upstream body cannot be decoded.
var ErrMalformedResponse = errors.New("malformed upstream response")

// APIError is a non-2xx upstream answer. Detail is empty when the body
// carried no detail message.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("upstream returned %d", e.Status)
	}
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Detail)
}

// Client is an activities API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New constructs a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EscapeComponent percent-encodes s for use as a single path segment or query
// value. Everything outside the unreserved set is escaped, including '&', '+'
// and spaces, and nothing is trimmed or case-folded.
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ActivitiesURL returns the catalog endpoint.
func (c *Client) ActivitiesURL() string {
	return c.baseURL + "/activities"
}

// SignupURL returns the signup endpoint for the activity and email.
func (c *Client) SignupURL(activity, email string) string {
	return c.memberURL(activity, "signup", email)
}

// UnregisterURL returns the unregister endpoint for the activity and email.
func (c *Client) UnregisterURL(activity, email string) string {
	return c.memberURL(activity, "unregister", email)
}

func (c *Client) memberURL(activity, action, email string) string {
	return c.baseURL + "/activities/" + EscapeComponent(activity) + "/" + action + "?email=" + EscapeComponent(email)
}

// ListActivities handles GET /activities.
func (c *Client) ListActivities(ctx context.Context) (*model.Catalog, error) {
	status, body, err := c.do(ctx, http.MethodGet, c.ActivitiesURL())
	if err != nil {
		return nil, err
	}
	if !isOK(status) {
		return nil, apiError(status, body)
	}
	catalog, err := model.ParseCatalog(body)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", errors.Join(ErrMalformedResponse, err))
	}
	return catalog, nil
}

// Signup handles POST /activities/{name}/signup?email=.
func (c *Client) Signup(ctx context.Context, activity, email string) (*model.SignupResponse, error) {
	status, body, err := c.do(ctx, http.MethodPost, c.SignupURL(activity, email))
	if err != nil {
		return nil, err
	}
	if !isOK(status) {
		return nil, apiError(status, body)
	}
	var resp model.SignupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("signup: %w: %v", ErrMalformedResponse, err)
	}
	return &resp, nil
}

// Unregister handles DELETE /activities/{name}/unregister?email=. The success
// body is not interpreted beyond being valid JSON.
func (c *Client) Unregister(ctx context.Context, activity, email string) error {
	status, body, err := c.do(ctx, http.MethodDelete, c.UnregisterURL(activity, email))
	if err != nil {
		return err
	}
	if !isOK(status) {
		return apiError(status, body)
	}
	if !json.Valid(body) {
		return fmt.Errorf("unregister: %w: body is not JSON", ErrMalformedResponse)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	reqID := chimiddleware.GetReqID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream_request_failed", "method", method, "url", rawURL, "request_id", reqID, "error", err.Error())
		return 0, nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}
	c.logger.Debug("upstream_request",
		"method", method,
		"url", rawURL,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start),
	)
	return resp.StatusCode, body, nil
}

func isOK(status int) bool {
	return status >= 200 && status < 300
}

// apiError decodes the {detail} envelope of a failed call. A body that is not
// JSON at all is a malformed response, not an API error.
func apiError(status int, body []byte) error {
	if !json.Valid(body) {
		return fmt.Errorf("status %d: %w: body is not JSON", status, ErrMalformedResponse)
	}
	var envelope map[string]any
	_ = json.Unmarshal(body, &envelope)
	detail, _ := envelope["detail"].(string)
	return &APIError{Status: status, Detail: detail}
}
