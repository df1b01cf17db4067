package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Default values applied by SetDefaults. The timeout ceiling is generous because a
// multi-model comparison runs every model several times on the backend.
const (
	DefaultVersion     = "1.0"
	DefaultBaseURL     = "http://localhost:8000"
	DefaultTimeout     = 300 * time.Second
	DefaultUserAgent   = "llmcompare"
	DefaultTemperature = 0.7
	DefaultTopP        = 1.0
	DefaultTopK        = 50
	DefaultMaxTokens   = 1000
	DefaultMaxWords    = 100
	DefaultStartPath   = "/"
)

// APIConfig describes how to reach the comparison backend.
type APIConfig struct {
	BaseURL   string `yaml:"base_url,omitempty" toml:"base_url,omitempty" json:"base_url,omitempty" jsonschema:"description=Base URL of the comparison backend (default: http://localhost:8000)"`
	Timeout   string `yaml:"timeout,omitempty" toml:"timeout,omitempty" json:"timeout,omitempty" jsonschema:"description=Ceiling for a single backend call as a Go duration (default: 300s)"`
	UserAgent string `yaml:"user_agent,omitempty" toml:"user_agent,omitempty" json:"user_agent,omitempty" jsonschema:"description=User-Agent header sent with every request"`
}

// LLMDefaults holds the generation parameters pre-filled in comparison forms.
// Zero values mean "unset" and are replaced by SetDefaults.
type LLMDefaults struct {
	Temperature float64 `yaml:"temperature,omitempty" toml:"temperature,omitempty" json:"temperature,omitempty" jsonschema:"minimum=0,maximum=2,description=Sampling temperature (default: 0.7)"`
	TopP        float64 `yaml:"top_p,omitempty" toml:"top_p,omitempty" json:"top_p,omitempty" jsonschema:"minimum=0,maximum=1,description=Nucleus sampling probability (default: 1.0)"`
	TopK        int     `yaml:"top_k,omitempty" toml:"top_k,omitempty" json:"top_k,omitempty" jsonschema:"minimum=1,maximum=100,description=Top-k sampling (default: 50)"`
	MaxTokens   int     `yaml:"max_tokens,omitempty" toml:"max_tokens,omitempty" json:"max_tokens,omitempty" jsonschema:"minimum=1,maximum=4000,description=Maximum tokens per generation (default: 1000)"`
}

// SummarizationDefaults holds defaults for the summarization feature.
type SummarizationDefaults struct {
	MaxWords int `yaml:"max_words,omitempty" toml:"max_words,omitempty" json:"max_words,omitempty" jsonschema:"minimum=20,maximum=500,description=Target summary length in words (default: 100)"`
}

// TUIConfig holds TUI appearance and behavior settings.
type TUIConfig struct {
	Theme     string `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty" jsonschema:"description=Color theme (kanagawa, gruvbox, terminal)"`
	StartPath string `yaml:"start_path,omitempty" toml:"start_path,omitempty" json:"start_path,omitempty" jsonschema:"description=Route opened when the TUI starts (default: /)"`
	Icons     string `yaml:"icons,omitempty" toml:"icons,omitempty" json:"icons,omitempty" jsonschema:"enum=nerd,enum=ascii,description=Icon set (nerd or ascii)"`
}

// Config represents the llmcompare.yml configuration
type Config struct {
	Version       string                `yaml:"version" toml:"version" json:"version" jsonschema:"description=Configuration version (e.g. 1.0)"`
	API           APIConfig             `yaml:"api,omitempty" toml:"api,omitempty" json:"api,omitempty" jsonschema:"description=Backend connection settings"`
	LLM           LLMDefaults           `yaml:"llm,omitempty" toml:"llm,omitempty" json:"llm,omitempty" jsonschema:"description=Default generation parameters"`
	Summarization SummarizationDefaults `yaml:"summarization,omitempty" toml:"summarization,omitempty" json:"summarization,omitempty" jsonschema:"description=Summarization feature defaults"`
	TUI           TUIConfig             `yaml:"tui,omitempty" toml:"tui,omitempty" json:"tui,omitempty" jsonschema:"description=TUI appearance and behavior settings"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`

	// Source is the file the configuration was loaded from, if any.
	Source string `yaml:"-" toml:"-" json:"-" jsonschema:"-"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == "" {
		c.API.Timeout = DefaultTimeout.String()
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = DefaultUserAgent
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = DefaultTemperature
	}
	if c.LLM.TopP == 0 {
		c.LLM.TopP = DefaultTopP
	}
	if c.LLM.TopK == 0 {
		c.LLM.TopK = DefaultTopK
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
	if c.Summarization.MaxWords == 0 {
		c.Summarization.MaxWords = DefaultMaxWords
	}
	if c.TUI.StartPath == "" {
		c.TUI.StartPath = DefaultStartPath
	}
}

// Timeout returns the parsed API timeout, falling back to DefaultTimeout.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded llmcompare.yml into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
