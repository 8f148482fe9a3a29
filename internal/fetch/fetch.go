// Package fetch provides HTTP fetching for the external feed APIs used
// during research. It centralizes timeout, User-Agent, and error handling.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent identifies the client to feed APIs. Reddit in particular
// rejects requests without a descriptive User-Agent.
const DefaultUserAgent = "TalentManager/1.0 (content research; +https://github.com/jonathan/talent-manager)"

// Error represents an error during URL fetching.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// retryBackoff is the wait before the single retry on 429 and 5xx
// responses. Feed APIs rate-limit aggressively but recover fast. Variable
// so tests can shrink it.
var retryBackoff = 2 * time.Second

// Options configures fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for feed fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Bytes retrieves the body of a URL using the given client. Rate-limited
// (429) and 5xx responses are retried once after a short backoff; any other
// non-2xx response yields a *Error carrying the status code.
func Bytes(ctx context.Context, client *http.Client, urlStr string, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	body, ferr := fetchOnce(ctx, client, urlStr, opts)
	if ferr != nil && retryable(ferr) {
		select {
		case <-ctx.Done():
			return nil, &Error{URL: urlStr, Message: "request canceled", Cause: ctx.Err()}
		case <-time.After(retryBackoff):
		}
		body, ferr = fetchOnce(ctx, client, urlStr, opts)
	}
	if ferr != nil {
		return nil, ferr
	}
	return body, nil
}

func retryable(err *Error) bool {
	return err.StatusCode == http.StatusTooManyRequests || err.StatusCode >= 500
}

func fetchOnce(ctx context.Context, client *http.Client, urlStr string, opts *Options) ([]byte, *Error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	return body, nil
}
