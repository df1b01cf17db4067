package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/grovetools/llmcompare/errors"
)

var knownThemes = map[string]bool{
	"":         true,
	"kanagawa": true,
	"gruvbox":  true,
	"terminal": true,
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validateBaseURL(c.API.BaseURL); err != nil {
		return err
	}

	if c.API.Timeout != "" {
		d, err := time.ParseDuration(c.API.Timeout)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "api.timeout must be a duration such as 300s").
				WithDetail("timeout", c.API.Timeout)
		}
		if d <= 0 {
			return errors.New(errors.ErrCodeConfigInvalid, "api.timeout must be positive").
				WithDetail("timeout", c.API.Timeout)
		}
	}

	if err := validateRange("llm.temperature", c.LLM.Temperature, 0, 2); err != nil {
		return err
	}
	if err := validateRange("llm.top_p", c.LLM.TopP, 0, 1); err != nil {
		return err
	}
	if err := validateRange("llm.top_k", float64(c.LLM.TopK), 1, 100); err != nil {
		return err
	}
	if err := validateRange("llm.max_tokens", float64(c.LLM.MaxTokens), 1, 4000); err != nil {
		return err
	}
	if err := validateRange("summarization.max_words", float64(c.Summarization.MaxWords), 20, 500); err != nil {
		return err
	}

	if !knownThemes[c.TUI.Theme] {
		return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("unknown theme '%s'", c.TUI.Theme)).
			WithDetail("theme", c.TUI.Theme)
	}
	if c.TUI.StartPath != "" && !strings.HasPrefix(c.TUI.StartPath, "/") {
		return errors.New(errors.ErrCodeConfigInvalid, "tui.start_path must begin with '/'").
			WithDetail("start_path", c.TUI.StartPath)
	}

	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "api.base_url is not a valid URL").
			WithDetail("base_url", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrCodeConfigInvalid, "api.base_url must use http or https").
			WithDetail("base_url", raw)
	}
	if u.Host == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "api.base_url must include a host").
			WithDetail("base_url", raw)
	}
	return nil
}

func validateRange(field string, value, min, max float64) error {
	if value < min || value > max {
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("%s must be between %g and %g", field, min, max)).
			WithDetail("field", field).
			WithDetail("value", value)
	}
	return nil
}
