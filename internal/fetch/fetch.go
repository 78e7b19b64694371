package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// DefaultUserAgent is a browser-like User-Agent. Some sites serve reduced or
// empty contact pages to obvious bots, so the default mimics a desktop Chrome.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultTimeout bounds each request end to end.
const DefaultTimeout = 10 * time.Second

// Client issues a single GET per call. No retries, no caching, no connection
// reuse guarantees beyond what net/http provides by default.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
}

// InvalidURLError reports an input that has no parseable host after
// normalization.
type InvalidURLError struct {
	Input string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL: %q", e.Input)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.Code)
}

// TransportError wraps DNS, TLS, connection, and timeout failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Normalize prepends https:// to schemeless input and verifies the result has
// a host component. The returned string is the effective fetch target.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &InvalidURLError{Input: raw}
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", &InvalidURLError{Input: raw}
	}
	return s, nil
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// Get normalizes rawURL, issues one GET, and returns the response body decoded
// to UTF-8 per the Content-Type charset. Non-2xx responses surface as
// *StatusError, network failures as *TransportError.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	target, err := Normalize(rawURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &InvalidURLError{Input: rawURL}
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	// Decode to UTF-8 so downstream text extraction sees the page the way a
	// browser would, regardless of the declared charset.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decode body: %w", err)}
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read body: %w", err)}
	}
	return b, nil
}
