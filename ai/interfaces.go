package ai

import "context"

// TextGenerator produces a completion for a single prompt.
// Implementations must be thread-safe for concurrent use.
type TextGenerator interface {
	// GenerateText submits the prompt and returns the model's response text.
	// A successful call may still return an empty string; callers decide
	// whether that is acceptable.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
type Provider interface {
	// TextGenerator returns the completion service, or nil when the provider
	// has no usable credential.
	TextGenerator() TextGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
