package answer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/supportai/ai"
)

// Generator produces answers with caching and bounded retries.
// It is safe for concurrent use.
type Generator struct {
	provider ai.Provider
	cache    Cache
	policy   RetryPolicy
	logger   *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator) error

// WithCache sets the answer cache.
// Default is a new MemoryCache.
func WithCache(cache Cache) Option {
	return func(g *Generator) error {
		if cache == nil {
			return ErrCacheRequired
		}
		g.cache = cache
		return nil
	}
}

// WithRetryPolicy sets the retry policy.
// Default is DefaultRetryPolicy().
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(g *Generator) error {
		if err := policy.Validate(); err != nil {
			return err
		}
		if policy.Backoff == nil {
			policy.Backoff = ExponentialBackoff(time.Second)
		}
		if policy.Sleep == nil {
			policy.Sleep = SleepContext
		}
		g.policy = policy
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger.With("component", "answer-generator")
		return nil
	}
}

// NewGenerator creates a generator backed by provider.
// A nil provider, or one without a text generator, is accepted; every
// uncached Generate call then fails with ErrMissingCredential.
func NewGenerator(provider ai.Provider, opts ...Option) (*Generator, error) {
	g := &Generator{
		provider: provider,
		cache:    NewMemoryCache(),
		policy:   DefaultRetryPolicy(),
		logger:   slog.Default().With("component", "answer-generator"),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Cache returns the answer cache.
func (g *Generator) Cache() Cache {
	return g.cache
}

// Configured reports whether a text generator is available.
func (g *Generator) Configured() bool {
	return g.textGenerator() != nil
}

// Generate answers query using relevantContext.
//
// A cached answer for the exact query is returned without calling the model.
// Otherwise the model is called up to MaxAttempts times; empty replies are
// treated as failures. If all attempts fail, ErrServiceUnavailable is
// returned and the underlying errors are logged. If ctx ends first, ctx.Err()
// is returned.
func (g *Generator) Generate(ctx context.Context, query, relevantContext string) (string, error) {
	if cached, ok := g.cache.Get(query); ok {
		g.logger.Debug("answer cache hit", "query_length", len(query))
		return cached, nil
	}

	generator := g.textGenerator()
	if generator == nil {
		return "", ErrMissingCredential
	}

	var answer string
	var failures []error
	err := g.policy.Do(ctx, func(attempt int) error {
		prompt := BuildPrompt(query, relevantContext)

		text, err := generator.GenerateText(ctx, prompt)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
		if err != nil {
			failures = append(failures, err)
			g.logger.Warn("answer attempt failed",
				"attempt", attempt+1,
				"max_attempts", g.policy.MaxAttempts,
				"err", err)
			return err
		}

		answer = strings.TrimSpace(text)
		return nil
	})

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		g.logger.Error("answer generation failed",
			"attempts", len(failures),
			"errors", failures)
		return "", ErrServiceUnavailable
	}

	g.cache.Set(query, answer)
	return answer, nil
}

func (g *Generator) textGenerator() ai.TextGenerator {
	if g.provider == nil {
		return nil
	}
	return g.provider.TextGenerator()
}
