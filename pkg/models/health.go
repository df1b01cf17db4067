package models

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status             string         `json:"status"`
	Version            string         `json:"version,omitempty"`
	AvailableProviders []string       `json:"available_providers,omitempty"`
	Config             map[string]any `json:"config,omitempty"`
}

// Healthy reports whether the backend declared itself healthy.
func (h HealthResponse) Healthy() bool {
	return h.Status == "healthy" || h.Status == "ok"
}
