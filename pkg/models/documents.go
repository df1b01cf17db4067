package models

// UploadResponse is returned by POST /documents/upload.
type UploadResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size,omitempty"`
	Status   string `json:"status,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ExtractionRequest is the body of POST /extraction/fields.
type ExtractionRequest struct {
	Text   string   `json:"text"`
	Fields []string `json:"fields"`
	Model  string   `json:"model,omitempty"`
}

// ExtractionResponse is returned by POST /extraction/fields.
type ExtractionResponse struct {
	Fields map[string]any `json:"fields"`
	Model  string         `json:"model,omitempty"`
}
