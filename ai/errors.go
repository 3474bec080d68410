package ai

import "errors"

var (
	// ErrMissingAPIKey indicates no credential is configured for the provider.
	ErrMissingAPIKey = errors.New("ai config: APIKey is required")

	// ErrInvalidConfig indicates a malformed provider setting.
	ErrInvalidConfig = errors.New("ai config: invalid")
)
