package fetcher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default fetcher settings.
const (
	// DefaultTimeout bounds the whole retrieval including redirects.
	// Small-business sites on cheap hosting can be slow; 15 seconds
	// keeps the audit responsive without rejecting them outright.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxRedirects caps redirect following. Five hops covers
	// the usual http -> https -> www chains with room to spare.
	DefaultMaxRedirects = 5

	// DefaultMaxBodySize limits how much markup is read. 5MB is far
	// beyond any sane landing page and prevents memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent is a browser-like identification header.
	// Some sites serve stripped-down or blocked responses to anything
	// that looks like a bot, which would skew every score.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"
)

// FetchResult holds the raw markup and retrieval timing for a page.
type FetchResult struct {
	// HTML is the response body as text.
	HTML string

	// LoadTimeMs is the wall-clock retrieval time in milliseconds.
	LoadTimeMs int
}

// Fetcher retrieves page markup for auditing.
//
// Design decision: TLS certificate verification is deliberately
// relaxed. Many small-business sites run with self-signed or
// misconfigured certificates, and refusing to audit them would turn
// away exactly the sites that need the audit most. This is an
// availability-over-strictness trade-off: we still detect and
// penalize plain http in the Technical category, but we never refuse
// a page over its certificate. Do not "fix" this.
type Fetcher struct {
	// client is the HTTP client used for retrieval.
	client *http.Client

	// userAgent is the identification header sent with each request.
	userAgent string

	// maxBodySize caps how many bytes of markup are read.
	maxBodySize int64

	// timeout bounds the whole retrieval.
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout overrides the retrieval deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// WithUserAgent overrides the identification header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize overrides the response body cap.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithHTTPClient replaces the HTTP client entirely. Used by tests to
// point at an httptest server transport.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// New creates a Fetcher with the default browser-like configuration.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		timeout:     DefaultTimeout,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Transport: &http.Transport{
				// Relaxed on purpose; see the Fetcher doc comment.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // deliberate availability trade-off
			},
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= DefaultMaxRedirects {
					return fmt.Errorf("stopped after %d redirects", DefaultMaxRedirects)
				}
				return nil
			},
		}
	}

	return f
}

// Fetch retrieves the markup for a normalized URL.
// It returns a *TimeoutError when the deadline is exceeded and a
// *NetworkError for any other transport failure. There are no
// retries: a single failed attempt aborts the whole audit.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &NetworkError{URL: pageURL, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, &TimeoutError{URL: pageURL, Err: err}
		}
		return nil, &NetworkError{URL: pageURL, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, &TimeoutError{URL: pageURL, Err: err}
		}
		return nil, &NetworkError{URL: pageURL, Err: err}
	}

	loadTime := time.Since(start)

	return &FetchResult{
		HTML:       string(body),
		LoadTimeMs: int(loadTime.Milliseconds()),
	}, nil
}

// isTimeout reports whether an error was caused by the fetch deadline.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
