package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/openai", cfg.Host)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, 0.3, cfg.Temperature)
	assert.Empty(t, cfg.APIKey)
	assert.Zero(t, cfg.MaxTokens)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with custom host and model", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://localhost:11434/v1"),
			WithModel("qwen2.5:3b"),
		)

		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
		assert.Equal(t, "qwen2.5:3b", cfg.Model)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithAPIKey("secret"),
			WithTemperature(0.7),
			WithMaxTokens(512),
		)

		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, 0.7, cfg.Temperature)
		assert.Equal(t, 512, cfg.MaxTokens)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name        string
		host        string
		key         string
		expectedURL string
		expectedKey string
	}{
		{
			name:        "already clean",
			host:        "http://localhost:11434/v1",
			key:         "abc",
			expectedURL: "http://localhost:11434/v1",
			expectedKey: "abc",
		},
		{
			name:        "trailing slash",
			host:        "http://localhost:11434/v1/",
			key:         "abc",
			expectedURL: "http://localhost:11434/v1",
			expectedKey: "abc",
		},
		{
			name:        "surrounding whitespace",
			host:        "  http://localhost:11434/v1 ",
			key:         " abc\n",
			expectedURL: "http://localhost:11434/v1",
			expectedKey: "abc",
		},
		{
			name:        "bearer prefix",
			host:        "http://localhost:11434/v1",
			key:         "Bearer abc",
			expectedURL: "http://localhost:11434/v1",
			expectedKey: "abc",
		},
		{
			name:        "empty",
			expectedURL: "",
			expectedKey: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host, APIKey: tt.key}

			cfg.Normalize()

			assert.Equal(t, tt.expectedURL, cfg.Host)
			assert.Equal(t, tt.expectedKey, cfg.APIKey)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Host:        "http://localhost:11434/v1/",
			Model:       "qwen2.5:3b",
			APIKey:      "secret",
			Temperature: 0.3,
		}
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()

		err := cfg.Validate()
		assert.NoError(t, err)

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := valid()
		cfg.Host = ""

		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "Host")
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := valid()
		cfg.Model = " "

		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "Model")
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Temperature = 2.5

		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "Temperature")
	})

	t.Run("negative max tokens", func(t *testing.T) {
		cfg := valid()
		cfg.MaxTokens = -1

		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "MaxTokens")
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := valid()
		cfg.APIKey = ""

		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrMissingAPIKey)
		assert.NotErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestConfigValidate_Defaults(t *testing.T) {
	// Defaults are complete apart from the credential
	err := DefaultConfig().Validate()
	require.ErrorIs(t, err, ErrMissingAPIKey)

	err = NewConfig(WithAPIKey("k")).Validate()
	require.NoError(t, err)
}
