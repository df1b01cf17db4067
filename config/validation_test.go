package config

import (
	"testing"

	"github.com/grovetools/llmcompare/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"https base url", func(c *Config) { c.API.BaseURL = "https://api.example.com/v1" }, false},
		{"ftp base url", func(c *Config) { c.API.BaseURL = "ftp://example.com" }, true},
		{"base url without host", func(c *Config) { c.API.BaseURL = "http://" }, true},
		{"negative timeout", func(c *Config) { c.API.Timeout = "-5s" }, true},
		{"unparseable timeout", func(c *Config) { c.API.Timeout = "five minutes" }, true},
		{"temperature upper bound", func(c *Config) { c.LLM.Temperature = 2 }, false},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 2.5 }, true},
		{"top_p too high", func(c *Config) { c.LLM.TopP = 1.5 }, true},
		{"max_tokens too high", func(c *Config) { c.LLM.MaxTokens = 4001 }, true},
		{"max_words too small", func(c *Config) { c.Summarization.MaxWords = 10 }, true},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "solarized" }, true},
		{"relative start path", func(c *Config) { c.TUI.StartPath = "summarization" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
