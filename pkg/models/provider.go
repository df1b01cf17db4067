package models

import "strings"

// Provider is the vendor a model name belongs to.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
	ProviderUnknown   Provider = "unknown"
)

// Providers lists the known providers in display order, Unknown last.
var Providers = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderUnknown}

// ProviderOf infers a model's provider from its name prefix.
func ProviderOf(model string) Provider {
	name := strings.ToLower(model)
	switch {
	case strings.HasPrefix(name, "gpt"):
		return ProviderOpenAI
	case strings.HasPrefix(name, "claude"):
		return ProviderAnthropic
	case strings.HasPrefix(name, "gemini"):
		return ProviderGoogle
	default:
		return ProviderUnknown
	}
}

// DisplayName returns the human-readable provider name.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderGoogle:
		return "Google"
	default:
		return "Unknown"
	}
}

// ParseProvider accepts a provider key or display name, case-insensitively.
func ParseProvider(s string) (Provider, bool) {
	for _, p := range Providers {
		if strings.EqualFold(s, string(p)) || strings.EqualFold(s, p.DisplayName()) {
			return p, true
		}
	}
	return "", false
}
