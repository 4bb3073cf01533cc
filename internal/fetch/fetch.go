// ABOUTME: HTTP feed fetcher with conditional requests using ETag and Last-Modified headers.
// ABOUTME: Maps transport failures onto a small error taxonomy and guards against SSRF and oversized responses.

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const MaxResponseSize = 10 * 1024 * 1024 // 10MB

// DefaultTimeout bounds a fetch when the caller's context carries no deadline.
const DefaultTimeout = 30 * time.Second

// ErrTimeout is returned when a fetch exceeds its deadline.
var ErrTimeout = errors.New("fetch timed out")

// StatusError reports a non-success HTTP status from the feed host.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// Result contains the response from one fetch.
type Result struct {
	Body         []byte
	ETag         string
	LastModified string
	NotModified  bool
}

// Fetcher retrieves a raw feed document. Implementations must honor the
// context deadline and report NotModified for 304 responses.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string, etag, lastModified *string) (*Result, error)
}

// HTTPFetcher implements Fetcher over net/http.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher with its own HTTP client.
// Per-call deadlines come from the caller's context; the client timeout is
// only a backstop.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: "podkeep/1.0 (podcast manager)",
	}
}

// isPrivateIP checks if an IP address is in a private range (excluding loopback for tests).
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return false
	}
	return ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}

// Fetch retrieves a feed URL with optional conditional request headers.
// If etag is provided, sets If-None-Match; if lastModified is provided,
// sets If-Modified-Since. Returns NotModified=true for 304 responses.
// Timeouts surface as ErrTimeout, non-2xx statuses as *StatusError.
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string, etag, lastModified *string) (*Result, error) {
	parsedURL, err := url.Parse(feedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	// SSRF protection: block private IP ranges
	if ips, err := net.LookupIP(parsedURL.Hostname()); err == nil {
		for _, ip := range ips {
			if isPrivateIP(ip) {
				return nil, fmt.Errorf("access to private IP ranges is not allowed")
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	if etag != nil && *etag != "" {
		req.Header.Set("If-None-Match", *etag)
	}

	if lastModified != nil && *lastModified != "" {
		req.Header.Set("If-Modified-Since", *lastModified)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return &Result{NotModified: true}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	// Read response body with a size cap
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)
	}

	return &Result{
		Body:         body,
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
