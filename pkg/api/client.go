// Package api is the HTTP client for the comparison backend.
//
// Every call is at-most-once: there are no retries. Failures are logged and
// returned as *errors.AppError with one of the codes HTTP_STATUS, TIMEOUT,
// CANCELLED, TRANSPORT or DECODE.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grovetools/llmcompare/config"
	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/logging"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries a per-call id the backend can log.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is read for its detail.
const maxErrorBody = 1 << 20

// Request describes one backend call. It is built fresh per call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded unless it is a payload built by Upload.
	Body any
	// Timeout overrides the client's ceiling when positive.
	Timeout time.Duration
}

// Client calls the comparison backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the default per-call ceiling.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
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

// WithLogger sets the logger used to report failed calls.
func WithLogger(logger *logrus.Entry) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid backend URL").
			WithDetail("base_url", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "backend URL must be absolute").
			WithDetail("base_url", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
		timeout:    config.DefaultTimeout,
		userAgent:  config.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewLogger("api")
	}
	return c, nil
}

// NewFromConfig creates a client from the api section of cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithTimeout(cfg.Timeout()),
		WithUserAgent(cfg.API.UserAgent),
	}
	return New(cfg.API.BaseURL, append(base, opts...)...)
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Timeout returns the default per-call ceiling.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Get issues a GET with optional query parameters and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post issues a POST with a JSON body and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Do executes req and decodes a successful JSON response into out. out may be
// nil to discard the body.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	requestID := uuid.NewString()
	err := c.do(ctx, req, requestID, out)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"method":     req.Method,
			"path":       req.Path,
			"request_id": requestID,
			"code":       errors.GetCode(err),
		}).WithError(err).Error("Backend request failed")
	}
	return err
}

func (c *Client) do(ctx context.Context, req Request, requestID string, out any) error {
	timeout := c.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode request body").
			WithDetail("path", req.Path)
	}

	httpReq, err := http.NewRequestWithContext(callCtx, req.Method, c.resolve(req.Path, req.Query), body)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create request").
			WithDetail("path", req.Path)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.classify(callCtx, req, timeout, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.HTTPStatus(req.Method, req.Path, resp.StatusCode,
			http.StatusText(resp.StatusCode), parseDetail(data)).
			WithDetail("request_id", requestID)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		if callCtx.Err() != nil {
			return c.classify(callCtx, req, timeout, err)
		}
		return errors.Wrap(err, errors.ErrCodeDecode, "failed to decode response").
			WithDetail("method", req.Method).
			WithDetail("path", req.Path)
	}
	return nil
}

// classify maps a transport-level failure to TIMEOUT, CANCELLED or TRANSPORT.
func (c *Client) classify(callCtx context.Context, req Request, timeout time.Duration, err error) error {
	switch {
	case stderrors.Is(callCtx.Err(), context.DeadlineExceeded):
		return errors.Timeout(req.Method, req.Path, timeout.String(), err)
	case stderrors.Is(callCtx.Err(), context.Canceled):
		return errors.Wrap(err, errors.ErrCodeCancelled, "request cancelled").
			WithDetail("method", req.Method).
			WithDetail("path", req.Path)
	default:
		return errors.Wrap(err, errors.ErrCodeTransport, fmt.Sprintf("%s %s failed", req.Method, req.Path)).
			WithDetail("method", req.Method).
			WithDetail("path", req.Path)
	}
}

// resolve joins an already escaped path onto the base URL.
func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	escaped := strings.TrimRight(u.EscapedPath(), "/") + "/" + strings.TrimLeft(path, "/")
	if unescaped, err := url.PathUnescape(escaped); err == nil {
		u.Path = unescaped
		u.RawPath = escaped
	} else {
		u.Path = escaped
		u.RawPath = ""
	}
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *formPayload:
		return bytes.NewReader(b.data), b.contentType, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// parseDetail extracts FastAPI's "detail" field from an error body. Validation
// errors arrive as a list of {loc, msg} objects and are flattened.
func parseDetail(data []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			loc := make([]string, 0, len(item.Loc))
			for _, l := range item.Loc {
				loc = append(loc, fmt.Sprint(l))
			}
			if len(loc) > 0 {
				parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(loc, "."), item.Msg))
			} else {
				parts = append(parts, item.Msg)
			}
		}
		return strings.Join(parts, "; ")
	}

	return string(payload.Detail)
}
