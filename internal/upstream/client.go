// Package upstream performs the outbound GET calls made to the weather and map
// providers. Each upstream host gets its own circuit breaker; there are no
// retries here, callers fall back across endpoints and queries instead.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

const maxBodyBytes = 8 << 20

var (
	ErrCircuitOpen  = errors.New("circuit breaker open")
	ErrNoHTTPClient = errors.New("http client not configured")
	errServerError  = errors.New("server error")
)

// StatusError reports a non-2xx response. The response itself is still
// returned next to it so callers can log status and content type.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code: %d", e.Code)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.Code, e.Body)
}

// Response is a fully read upstream response.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// BreakerSettings controls the per-host circuit breakers.
type BreakerSettings struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
}

// DefaultBreakerSettings mirrors the per-provider settings used for weather providers.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	}
}

// Client is safe for concurrent use.
type Client struct {
	http      *http.Client
	userAgent string
	settings  BreakerSettings

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func NewClient(httpClient *http.Client, userAgent string, settings BreakerSettings) *Client {
	return &Client{
		http:      httpClient,
		userAgent: userAgent,
		settings:  settings,
		breakers:  make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (c *Client) breaker(host string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	cb, ok := c.breakers[host]
	if !ok {
		cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        host,
			MaxRequests: c.settings.MaxRequests,
			Interval:    c.settings.Interval,
			Timeout:     c.settings.Timeout,
		})
		c.breakers[host] = cb
	}
	return cb
}

// Get issues a GET to rawURL with the given query and headers.
//
// Transport failures and an open breaker return an empty Response. A non-2xx
// status returns the Response together with a *StatusError.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values, header http.Header) (Response, error) {
	if c.http == nil {
		return Response{}, ErrNoHTTPClient
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Response{}, fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	result, err := c.breaker(u.Host).Execute(func() (interface{}, error) {
		resp, execErr := c.http.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if readErr != nil {
			return nil, fmt.Errorf("read body: %w", readErr)
		}

		out := Response{
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        body,
		}

		// Only rate limiting and server errors count against the breaker.
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return out, fmt.Errorf("%w: %w", errServerError, statusError(out))
		}
		return out, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return Response{}, fmt.Errorf("%w: %s: %v", ErrCircuitOpen, u.Host, err)
	}

	resp, _ := result.(Response)
	if err != nil {
		if errors.Is(err, errServerError) {
			return resp, statusError(resp)
		}
		return resp, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, statusError(resp)
	}
	return resp, nil
}

func statusError(resp Response) *StatusError {
	body := strings.TrimSpace(string(resp.Body))
	if len(body) > 200 {
		body = body[:200]
	}
	return &StatusError{Code: resp.StatusCode, Body: body}
}
