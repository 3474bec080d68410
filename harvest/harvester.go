package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/supportai/core"
)

// DefaultPaths are the site pages harvested when no list is configured.
var DefaultPaths = []string{"/", "/about", "/faq", "/shipping", "/returns", "/contact"}

// PageURLs joins each path onto base, keeping the order of paths.
func PageURLs(base string, paths []string) ([]string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, base)
	}

	urls := make([]string, len(paths))
	for i, p := range paths {
		urls[i] = u.JoinPath(p).String()
	}
	return urls, nil
}

// Harvester owns the site corpus. The corpus is fetched on first use and
// kept until Reset.
type Harvester struct {
	fetcher     Fetcher
	urls        []string
	concurrency int
	logger      *slog.Logger

	mu       sync.Mutex
	loaded   bool
	corpus   []core.ContextPart
	inflight chan struct{} // closed when the running harvest finishes
	gen      uint64        // bumped by Reset so a stale harvest is not cached
}

// Option configures a Harvester.
type Option func(*Harvester) error

// WithConcurrency fetches up to n pages at once. Default is 1 (sequential).
// Results keep the configured URL order regardless of n.
func WithConcurrency(n int) Option {
	return func(h *Harvester) error {
		if n < 1 {
			return ErrInvalidConcurrency
		}
		h.concurrency = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harvester) error {
		if logger == nil {
			logger = slog.Default()
		}
		h.logger = logger.With("component", "harvester")
		return nil
	}
}

// NewHarvester creates a harvester for the given URLs.
func NewHarvester(fetcher Fetcher, urls []string, opts ...Option) (*Harvester, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}

	h := &Harvester{
		fetcher:     fetcher,
		urls:        append([]string(nil), urls...),
		concurrency: 1,
		logger:      slog.Default().With("component", "harvester"),
	}

	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// URLs returns the configured page list.
func (h *Harvester) URLs() []string {
	return append([]string(nil), h.urls...)
}

// SiteContext returns the harvested corpus, fetching it on the first call.
// Later calls return the same slice without touching the network. An empty
// corpus is a valid result and is cached like any other.
//
// Only one harvest runs at a time and concurrent callers share it. A caller
// whose ctx ends while waiting gets ctx.Err(); the harvest itself keeps going,
// bounded by the fetcher's per-request timeout, and is cached for the next
// caller.
func (h *Harvester) SiteContext(ctx context.Context) ([]core.ContextPart, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		h.mu.Lock()
		if h.loaded {
			corpus := h.corpus
			h.mu.Unlock()
			return corpus, nil
		}
		done := h.inflight
		if done == nil {
			done = make(chan struct{})
			h.inflight = done
			go h.harvest(context.WithoutCancel(ctx), h.gen, done)
		}
		h.mu.Unlock()

		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (h *Harvester) harvest(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	results := h.Collect(ctx)
	corpus := make([]core.ContextPart, 0, len(results))
	for _, result := range results {
		if !result.OK() {
			h.logger.Warn("page fetch failed", "url", result.URL, "err", result.Err)
			continue
		}
		corpus = append(corpus, *result.Part)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inflight == done {
		h.inflight = nil
	}
	if h.gen != gen {
		h.logger.Debug("discarding harvest started before reset")
		return
	}
	h.corpus = corpus
	h.loaded = true

	h.logger.Info("site context harvested", "pages", len(corpus), "configured", len(h.urls))
}

// Collect fetches every configured URL and reports each outcome in
// configured order. It does not read or update the cached corpus.
func (h *Harvester) Collect(ctx context.Context) []core.PageResult {
	results := make([]core.PageResult, len(h.urls))
	if h.concurrency > 1 && len(h.urls) > 1 {
		if h.collectConcurrent(ctx, results) {
			return results
		}
	}

	for i, u := range h.urls {
		results[i] = h.fetchOne(ctx, u)
	}
	return results
}

// Loaded reports whether a corpus is cached.
func (h *Harvester) Loaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loaded
}

// Reset drops the cached corpus so the next SiteContext call harvests again.
func (h *Harvester) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loaded = false
	h.corpus = nil
	h.inflight = nil
	h.gen++
}

// collectConcurrent fills results using a worker pool.
// Returns false if the pool could not be created.
func (h *Harvester) collectConcurrent(ctx context.Context, results []core.PageResult) bool {
	pool, err := ants.NewPool(h.concurrency)
	if err != nil {
		h.logger.Warn("failed to create fetch pool, fetching sequentially", "err", err)
		return false
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, u := range h.urls {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i] = h.fetchOne(ctx, u)
		}); err != nil {
			wg.Done()
			results[i] = core.PageResult{URL: u, Err: &FetchError{URL: u, Err: err}}
		}
	}
	wg.Wait()

	return true
}

func (h *Harvester) fetchOne(ctx context.Context, u string) core.PageResult {
	if err := ctx.Err(); err != nil {
		return core.PageResult{URL: u, Err: err}
	}

	part, err := h.fetcher.Fetch(ctx, u)
	if err != nil {
		return core.PageResult{URL: u, Err: err}
	}

	h.logger.Debug("page fetched", "url", u, "chars", len(part.Text))
	return core.PageResult{URL: u, Part: &part}
}
