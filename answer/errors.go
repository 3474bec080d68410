package answer

import "errors"

var (
	// ErrMissingCredential indicates no text generator is configured.
	// It is returned before any attempt is made and is never retried.
	ErrMissingCredential = errors.New("AI credential is not configured")

	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = errors.New("empty response from AI service")

	// ErrServiceUnavailable is returned when every attempt has failed.
	ErrServiceUnavailable = errors.New("AI service unavailable")

	// ErrInvalidMaxAttempts indicates a retry policy with fewer than one attempt.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrCacheRequired indicates a nil cache was supplied.
	ErrCacheRequired = errors.New("cache is required")
)
