package config

// mergeConfigs merges override configuration into base. Non-zero override
// values win; extension maps are merged one level deep.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	result.API = mergeAPI(result.API, override.API)
	result.LLM = mergeLLM(result.LLM, override.LLM)
	if override.Summarization.MaxWords != 0 {
		result.Summarization.MaxWords = override.Summarization.MaxWords
	}
	if override.TUI.Theme != "" {
		result.TUI.Theme = override.TUI.Theme
	}
	if override.TUI.StartPath != "" {
		result.TUI.StartPath = override.TUI.StartPath
	}
	if override.TUI.Icons != "" {
		result.TUI.Icons = override.TUI.Icons
	}

	if override.Extensions != nil {
		merged := make(map[string]interface{}, len(result.Extensions)+len(override.Extensions))
		for key, value := range result.Extensions {
			merged[key] = value
		}
		for key, value := range override.Extensions {
			// If both base and override have the same extension key, merge them
			if baseMap, ok := merged[key].(map[string]interface{}); ok {
				if overrideMap, ok := value.(map[string]interface{}); ok {
					mergedMap := make(map[string]interface{}, len(baseMap)+len(overrideMap))
					for k, v := range baseMap {
						mergedMap[k] = v
					}
					for k, v := range overrideMap {
						mergedMap[k] = v
					}
					merged[key] = mergedMap
					continue
				}
			}
			merged[key] = value
		}
		result.Extensions = merged
	}

	return &result
}

func mergeAPI(base, override APIConfig) APIConfig {
	result := base
	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if override.Timeout != "" {
		result.Timeout = override.Timeout
	}
	if override.UserAgent != "" {
		result.UserAgent = override.UserAgent
	}
	return result
}

func mergeLLM(base, override LLMDefaults) LLMDefaults {
	result := base
	if override.Temperature != 0 {
		result.Temperature = override.Temperature
	}
	if override.TopP != 0 {
		result.TopP = override.TopP
	}
	if override.TopK != 0 {
		result.TopK = override.TopK
	}
	if override.MaxTokens != 0 {
		result.MaxTokens = override.MaxTokens
	}
	return result
}
