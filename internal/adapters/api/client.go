package api

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

	"plannr/internal/domain"
)

// maxBodyBytes caps how much of a backend response is read.
const maxBodyBytes = 1 << 20

var (
	_ domain.AuthAPI   = (*Client)(nil)
	_ domain.EventAPI  = (*Client)(nil)
	_ domain.InviteAPI = (*Client)(nil)
)

// Client talks to the event backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cookieName string
	eventsPath string
}

type Option func(*Client)

// WithHTTPClient sets the underlying client. A nil client keeps http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCookieName sets the name of the backend's session cookie.
func WithCookieName(name string) Option {
	return func(c *Client) { c.cookieName = name }
}

// WithEventsPath sets the collection path for the authenticated event endpoints.
func WithEventsPath(path string) Option {
	return func(c *Client) { c.eventsPath = "/" + strings.Trim(path, "/") }
}

// NewClient returns a client for the backend at origin, e.g. "http://localhost:8000".
func NewClient(origin string, opts ...Option) (*Client, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid api origin: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api origin %q: scheme and host are required", origin)
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(u.String(), "/"),
		httpClient: http.DefaultClient,
		cookieName: "fast_api_token",
		eventsPath: "/api/events",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// endpoint describes one backend call and how its failures read to the user.
type endpoint struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	// public calls never carry the session cookie.
	public bool

	failMsg     string
	notFoundMsg string
	// preferDetail shows the backend's detail message instead of failMsg when present.
	preferDetail bool
}

type result struct {
	status  int
	body    []byte
	cookies []*http.Cookie
}

// sessionToken returns the backend token from a response's Set-Cookie headers.
func (c *Client) sessionToken(res *result) string {
	for _, ck := range res.cookies {
		if ck.Name == c.cookieName && ck.MaxAge >= 0 {
			return ck.Value
		}
	}
	return ""
}

// call performs e and decodes a successful body into out (when out is non-nil).
// Every failure comes back as a *domain.APIError.
func (c *Client) call(ctx context.Context, e endpoint, out any) (*result, error) {
	res, err := c.send(ctx, e)
	if err != nil {
		// a cancelled call was abandoned by its caller; a deadline means the backend was too slow
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, &domain.APIError{Op: e.op, Message: e.failMsg, Err: fmt.Errorf("%w: %w", ctxErr, err)}
		}
		return nil, &domain.APIError{Op: e.op, Message: e.failMsg, Err: fmt.Errorf("%w: %w", domain.ErrUnavailable, err)}
	}
	if res.status < 200 || res.status > 299 {
		return nil, c.failure(e, res)
	}
	if out != nil && len(bytes.TrimSpace(res.body)) > 0 {
		if err := json.Unmarshal(res.body, out); err != nil {
			return nil, &domain.APIError{
				Op:         e.op,
				StatusCode: res.status,
				Message:    e.failMsg,
				Err:        fmt.Errorf("%w: failed to decode response: %w", domain.ErrBadResponse, err),
			}
		}
	}
	return res, nil
}

func (c *Client) send(ctx context.Context, e endpoint) (*result, error) {
	var reader io.Reader
	if e.body != nil {
		b, err := json.Marshal(e.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	target := c.baseURL + e.path
	if len(e.query) > 0 {
		target += "?" + e.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, e.method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if e.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !e.public {
		if token, ok := domain.BackendTokenFromContext(ctx); ok {
			req.AddCookie(&http.Cookie{Name: c.cookieName, Value: token})
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s %s: %w", e.method, e.path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return &result{status: resp.StatusCode, body: body, cookies: resp.Cookies()}, nil
}

func (c *Client) failure(e endpoint, res *result) *domain.APIError {
	apiErr := &domain.APIError{
		Op:         e.op,
		StatusCode: res.status,
		Message:    e.failMsg,
		Detail:     parseDetail(res.body),
		Err:        sentinelFor(res.status),
	}
	switch {
	case res.status == http.StatusNotFound && e.notFoundMsg != "":
		apiErr.Message = e.notFoundMsg
	case e.preferDetail && apiErr.Detail != "":
		apiErr.Message = apiErr.Detail
	}
	return apiErr
}

func sentinelFor(status int) error {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case status == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case status == http.StatusForbidden:
		return domain.ErrForbidden
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusConflict:
		return domain.ErrConflict
	case status >= 500:
		return domain.ErrUnavailable
	}
	return domain.ErrBadResponse
}

// parseDetail extracts the backend's "detail" field, which is either a message or a
// list of validation errors.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(envelope.Detail, &msg); err == nil {
		return strings.TrimSpace(msg)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil && len(items) > 0 {
		return strings.TrimSpace(items[0].Msg)
	}
	return ""
}

// invalidResponse reports a 2xx response whose payload is unusable.
func invalidResponse(op, msg string) error {
	return &domain.APIError{Op: op, Message: msg, Err: domain.ErrBadResponse}
}
