package harvest

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/poiesic/supportai/core"
)

const (
	// DefaultUserAgent identifies the harvester to the site being read.
	DefaultUserAgent = "SupportAI-ContextHarvester/1.0"

	// DefaultTimeout caps a single page request.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodyBytes caps how much of a page body is read.
	DefaultMaxBodyBytes int64 = 5 << 20
)

// Fetcher retrieves one page and reduces it to plain text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (core.ContextPart, error)
}

// HTTPFetcher fetches pages over HTTP and strips them with ExtractText.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithHTTPClient replaces the underlying client. The client's own timeout applies.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithTimeout sets the per-request timeout.
// Default is DefaultTimeout.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		if timeout > 0 {
			f.client.Timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) FetcherOption {
	return func(f *HTTPFetcher) {
		if userAgent != "" {
			f.userAgent = userAgent
		}
	}
}

// WithMaxBodyBytes limits how many bytes of each response body are parsed.
func WithMaxBodyBytes(n int64) FetcherOption {
	return func(f *HTTPFetcher) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

// NewHTTPFetcher creates a fetcher with a bounded client and the default user agent.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:       &http.Client{Timeout: DefaultTimeout},
		userAgent:    DefaultUserAgent,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch issues a GET for url and returns its text.
// Transport failures and non-2xx responses are returned as *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (core.ContextPart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.ContextPart{}, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return core.ContextPart{}, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return core.ContextPart{}, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	text, err := ExtractText(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return core.ContextPart{}, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	return core.ContextPart{URL: url, Text: text}, nil
}
