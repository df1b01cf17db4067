package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		API: APIConfig{BaseURL: "http://custom:1234", Timeout: "30s"},
		LLM: LLMDefaults{TopK: 5},
	}
	cfg.SetDefaults()

	assert.Equal(t, "http://custom:1234", cfg.API.BaseURL)
	assert.Equal(t, "30s", cfg.API.Timeout)
	assert.Equal(t, 5, cfg.LLM.TopK)
	assert.Equal(t, DefaultMaxTokens, cfg.LLM.MaxTokens)
	assert.Equal(t, DefaultVersion, cfg.Version)
}

func TestTimeoutFallback(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"90s", 90 * time.Second},
		{"5m", 5 * time.Minute},
		{"", DefaultTimeout},
		{"garbage", DefaultTimeout},
		{"0s", DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg := &Config{API: APIConfig{Timeout: tt.raw}}
			assert.Equal(t, tt.want, cfg.Timeout())
		})
	}
}
