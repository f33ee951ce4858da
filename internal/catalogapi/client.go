// Package catalogapi talks to the remote catalog and order API that owns
// products, categories, site settings and orders.
package catalogapi

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
	"time"

	"github.com/guttosm/storefront-service/internal/logger"
	"github.com/guttosm/storefront-service/internal/metrics"
)

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("catalog resource not found")
	// ErrUnavailable covers transport failures, 5xx responses and an open circuit.
	ErrUnavailable = errors.New("catalog api unavailable")
)

const (
	defaultTimeout = 5 * time.Second
	// maxPages bounds how many paginated list pages one call follows.
	maxPages = 50
	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 4 << 10
)

// APIError is a non-2xx response.
type APIError struct {
	Operation string
	Status    int
	Body      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog api %s: status %d: %s", e.Operation, e.Status, e.Body)
}

// Unwrap maps the status onto the package sentinels so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= http.StatusInternalServerError:
		return ErrUnavailable
	default:
		return nil
	}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// Client is a JSON client for the catalog API. It never retries.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New returns a client rooted at baseURL, e.g. "http://localhost:8000/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse catalog base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// resolve builds an absolute URL for path (which starts and ends with "/").
// path is already escaped; slugs go through url.PathEscape.
func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	raw := u.EscapedPath() + path
	if p, err := url.PathUnescape(raw); err == nil {
		u.Path, u.RawPath = p, raw
	} else {
		u.Path = u.Path + path
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one request and decodes a JSON body into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, method, rawURL string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogRequest(op, resultLabel(err), time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log := logger.Component("catalogapi")
		log.Warn().Err(err).Str("operation", op).Msg("catalog api request failed")
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Operation: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrUnavailable, op, err)
	}
	return nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "client_error"
	}
}

// page is a paginated list envelope.
type page[T any] struct {
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// getList fetches a list endpoint that may answer with a bare array or with a
// paginated envelope. Envelopes are followed through "next" links.
func getList[T any](ctx context.Context, c *Client, op, path string, query url.Values) ([]T, error) {
	next := c.resolve(path, query)
	out := []T{}

	for i := 0; next != "" && i < maxPages; i++ {
		var raw json.RawMessage
		if err := c.do(ctx, op, http.MethodGet, next, nil, &raw); err != nil {
			return nil, err
		}

		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var items []T
			if err := json.Unmarshal(trimmed, &items); err != nil {
				return nil, fmt.Errorf("%w: decode %s list: %v", ErrUnavailable, op, err)
			}
			return append(out, items...), nil
		}

		var p page[T]
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("%w: decode %s page: %v", ErrUnavailable, op, err)
		}
		out = append(out, p.Results...)

		next = ""
		if p.Next != nil {
			next = *p.Next
		}
	}
	return out, nil
}
