// Package config loads the supportai service configuration.
//
// Settings come from an optional YAML file layered over Default(), then from
// the environment. The AI credential is only ever read from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/poiesic/supportai/ai"
	"github.com/poiesic/supportai/answer"
	"github.com/poiesic/supportai/harvest"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey  = "GEMINI_API_KEY"
	EnvSiteURL = "SUPPORTAI_SITE_URL"
	EnvListen  = "SUPPORTAI_LISTEN"
	EnvDBPath  = "SUPPORTAI_DB"
)

// Configuration validation errors.
var (
	ErrMissingListen        = errors.New("listen address is required")
	ErrMissingDBPath        = errors.New("db_path is required")
	ErrInvalidWorkers       = errors.New("workers must be at least 1")
	ErrInvalidPromptTimeout = errors.New("prompt_timeout must be positive")
	ErrNoPaths              = errors.New("site.paths must list at least one page")
	ErrInvalidSiteTimeout   = errors.New("site.timeout must be positive")
	ErrInvalidConcurrency   = errors.New("site.concurrency must be at least 1")
	ErrInvalidMaxAttempts   = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidBaseDelay     = errors.New("retry.base_delay must be non-negative")
)

// Config represents the complete service configuration.
type Config struct {
	Listen        string        `yaml:"listen"`
	DBPath        string        `yaml:"db_path"`
	Workers       int           `yaml:"workers"`
	PromptTimeout time.Duration `yaml:"prompt_timeout"`
	Site          SiteConfig    `yaml:"site"`
	AI            AIConfig      `yaml:"ai"`
	Retry         RetryConfig   `yaml:"retry"`
}

// SiteConfig describes the pages harvested for answer context.
type SiteConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Paths       []string      `yaml:"paths"`
	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
}

// AIConfig selects the generative model. APIKey is never read from the file.
type AIConfig struct {
	Host        string  `yaml:"host"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"-"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// RetryConfig bounds answer generation attempts.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
}

// Default returns the built-in configuration.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Listen:        ":8080",
		DBPath:        "./data/supportai",
		Workers:       64,
		PromptTimeout: 60 * time.Second,
		Site: SiteConfig{
			BaseURL:     "http://localhost:3000",
			Paths:       append([]string(nil), harvest.DefaultPaths...),
			UserAgent:   harvest.DefaultUserAgent,
			Timeout:     harvest.DefaultTimeout,
			Concurrency: 1,
		},
		AI: AIConfig{
			Host:        aiDefaults.Host,
			Model:       aiDefaults.Model,
			Temperature: aiDefaults.Temperature,
			MaxTokens:   aiDefaults.MaxTokens,
		},
		Retry: RetryConfig{
			MaxAttempts: 2,
			BaseDelay:   time.Second,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default().
// The result is not validated; call Validate after ApplyEnv.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides settings from the environment using lookup,
// typically os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIKey); ok {
		c.AI.APIKey = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvSiteURL); ok && strings.TrimSpace(v) != "" {
		c.Site.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvListen); ok && strings.TrimSpace(v) != "" {
		c.Listen = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvDBPath); ok && strings.TrimSpace(v) != "" {
		c.DBPath = strings.TrimSpace(v)
	}
}

// Validate validates the configuration.
// A missing API key is not an error here; it disables answer generation.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return ErrMissingListen
	}
	if c.DBPath == "" {
		return ErrMissingDBPath
	}
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.PromptTimeout <= 0 {
		return ErrInvalidPromptTimeout
	}

	if len(c.Site.Paths) == 0 {
		return ErrNoPaths
	}
	if _, err := c.PageURLs(); err != nil {
		return err
	}
	if c.Site.Timeout <= 0 {
		return ErrInvalidSiteTimeout
	}
	if c.Site.Concurrency < 1 {
		return ErrInvalidConcurrency
	}

	if c.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}
	if c.Retry.BaseDelay < 0 {
		return ErrInvalidBaseDelay
	}

	aiCfg := c.AIConfig()
	if err := aiCfg.Validate(); err != nil && !errors.Is(err, ai.ErrMissingAPIKey) {
		return err
	}

	return nil
}

// PageURLs returns the absolute URLs of the configured site pages.
func (c *Config) PageURLs() ([]string, error) {
	return harvest.PageURLs(c.Site.BaseURL, c.Site.Paths)
}

// AIConfig converts the model settings into an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.AI.Host),
		ai.WithModel(c.AI.Model),
		ai.WithAPIKey(c.AI.APIKey),
		ai.WithTemperature(c.AI.Temperature),
		ai.WithMaxTokens(c.AI.MaxTokens),
	)
}

// RetryPolicy converts the retry settings into an answer.RetryPolicy.
func (c *Config) RetryPolicy() answer.RetryPolicy {
	policy := answer.DefaultRetryPolicy()
	policy.MaxAttempts = c.Retry.MaxAttempts
	policy.Backoff = answer.ExponentialBackoff(c.Retry.BaseDelay)
	return policy
}
