// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"fmt"
	"strings"
)

// Config holds configuration for the generative-language provider.
type Config struct {
	// Host is the base URL of an OpenAI-compatible chat completions API.
	// Example: "https://generativelanguage.googleapis.com/v1beta/openai"
	Host string

	// Model is the model identifier used for answer generation.
	// Example: "gemini-2.0-flash", "gpt-4o-mini"
	Model string

	// APIKey is the credential for the provider. It is never read from a
	// config file; callers supply it from the process environment.
	APIKey string

	// Temperature controls sampling randomness.
	// Default: 0.3
	Temperature float64

	// MaxTokens caps the length of a generated answer. Zero leaves the
	// provider default in place.
	MaxTokens int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the provider base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the provider credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// WithMaxTokens sets the maximum answer length in tokens.
func WithMaxTokens(max int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = max
	}
}

// DefaultConfig returns a Config pointed at the Gemini OpenAI-compatible endpoint.
// The API key is left empty.
func DefaultConfig() *Config {
	return &Config{
		Host:        "https://generativelanguage.googleapis.com/v1beta/openai",
		Model:       "gemini-2.0-flash",
		Temperature: 0.3,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithAPIKey(os.Getenv("GEMINI_API_KEY")),
//	    WithModel("gemini-1.5-flash"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize trims whitespace from all string fields and removes a trailing
// slash from Host. A "Bearer " prefix on the key is dropped.
func (c *Config) Normalize() {
	c.Host = strings.TrimSuffix(strings.TrimSpace(c.Host), "/")
	c.Model = strings.TrimSpace(c.Model)
	c.APIKey = strings.TrimPrefix(strings.TrimSpace(c.APIKey), "Bearer ")
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
// A missing key is reported as ErrMissingAPIKey so callers can treat it
// separately from malformed settings.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return fmt.Errorf("%w: Host is required", ErrInvalidConfig)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: Model is required", ErrInvalidConfig)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: Temperature must be between 0 and 2", ErrInvalidConfig)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("%w: MaxTokens cannot be negative", ErrInvalidConfig)
	}
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
