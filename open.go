package supportai

import (
	"errors"
	"log/slog"

	"github.com/poiesic/supportai/ai"
	"github.com/poiesic/supportai/ai/openai"
	"github.com/poiesic/supportai/answer"
	"github.com/poiesic/supportai/config"
	"github.com/poiesic/supportai/harvest"
	"github.com/poiesic/supportai/storage/badger"
)

// NewHarvester builds the site harvester described by cfg.
func NewHarvester(cfg *config.Config) (*harvest.Harvester, error) {
	urls, err := cfg.PageURLs()
	if err != nil {
		return nil, err
	}

	fetcher := harvest.NewHTTPFetcher(
		harvest.WithTimeout(cfg.Site.Timeout),
		harvest.WithUserAgent(cfg.Site.UserAgent),
	)
	return harvest.NewHarvester(fetcher, urls, harvest.WithConcurrency(cfg.Site.Concurrency))
}

// NewProvider creates the AI provider described by cfg. A missing API key is
// not an error: it returns a nil provider and answer generation is disabled.
func NewProvider(cfg *config.Config) (ai.Provider, error) {
	provider, err := openai.NewProvider(cfg.AIConfig())
	if errors.Is(err, ai.ErrMissingAPIKey) {
		slog.Warn("no AI credential configured, answer generation is disabled", "env", config.EnvAPIKey)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// Open validates cfg and assembles a complete assistant: the badger message
// store at cfg.DBPath, the OpenAI-compatible provider, the site harvester
// and the answer generator. Call Close when done.
func Open(cfg *config.Config, opts ...Option) (*Assistant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	harvester, err := NewHarvester(cfg)
	if err != nil {
		return nil, err
	}

	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	generator, err := answer.NewGenerator(provider, answer.WithRetryPolicy(cfg.RetryPolicy()))
	if err != nil {
		closeProvider(provider)
		return nil, err
	}

	messages, err := badger.OpenMessageRepository(cfg.DBPath)
	if err != nil {
		closeProvider(provider)
		return nil, err
	}

	assistant, err := NewAssistant(harvester, generator, messages, opts...)
	if err != nil {
		messages.Close()
		closeProvider(provider)
		return nil, err
	}

	assistant.closers = append(assistant.closers, messages.Close)
	if provider != nil {
		assistant.closers = append(assistant.closers, provider.Close)
	}
	return assistant, nil
}

func closeProvider(provider ai.Provider) {
	if provider != nil {
		provider.Close()
	}
}
