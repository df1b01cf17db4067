package models

// Generation parameter bounds enforced by the backend.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
	MinTopP        = 0.0
	MaxTopP        = 1.0
	MinTopK        = 1
	MaxTopK        = 100
	MinMaxTokens   = 1
	MaxMaxTokens   = 4000
	MinPenalty     = -2.0
	MaxPenalty     = 2.0
)

// LLMConfig is the per-request generation configuration.
type LLMConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"top_p"`
	TopK             int     `json:"top_k"`
	MaxTokens        int     `json:"max_tokens"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
	PresencePenalty  float64 `json:"presence_penalty"`
	Stream           bool    `json:"stream"`
}

// DefaultLLMConfig mirrors the backend's defaults.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Temperature: 0.7,
		TopP:        1.0,
		TopK:        50,
		MaxTokens:   1000,
	}
}

// Clamp returns c with every field forced into the backend's accepted range.
func (c LLMConfig) Clamp() LLMConfig {
	c.Temperature = clampFloat(c.Temperature, MinTemperature, MaxTemperature)
	c.TopP = clampFloat(c.TopP, MinTopP, MaxTopP)
	c.TopK = clampInt(c.TopK, MinTopK, MaxTopK)
	c.MaxTokens = clampInt(c.MaxTokens, MinMaxTokens, MaxMaxTokens)
	c.FrequencyPenalty = clampFloat(c.FrequencyPenalty, MinPenalty, MaxPenalty)
	c.PresencePenalty = clampFloat(c.PresencePenalty, MinPenalty, MaxPenalty)
	return c
}

// ModelsResponse is returned by GET /llm/models.
type ModelsResponse struct {
	AvailableModels    []string `json:"available_models"`
	AvailableProviders []string `json:"available_providers,omitempty"`
}

// LLMConfigResponse is returned by GET /llm/config.
type LLMConfigResponse struct {
	CurrentConfig      LLMConfig      `json:"current_config"`
	AvailableProviders []string       `json:"available_providers"`
	AvailableModels    []string       `json:"available_models"`
	InternalConfig     map[string]any `json:"internal_config,omitempty"`
}

// ModelTestResponse is returned by POST /llm/test/{model}.
type ModelTestResponse struct {
	Model      string    `json:"model"`
	TestPrompt string    `json:"test_prompt,omitempty"`
	Response   string    `json:"response,omitempty"`
	Error      string    `json:"error,omitempty"`
	ConfigUsed LLMConfig `json:"config_used"`
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
