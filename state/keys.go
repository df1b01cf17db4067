package state

// Namespaces present in the default tree.
const (
	App           = "app"
	LLM           = "llm"
	Summarization = "summarization"
	Extraction    = "extraction"
	Documents     = "documents"
)

// Field keys shared across packages. Feature modules may add their own.
const (
	// app
	KeyLoading          = "loading"
	KeyError            = "error"
	KeyCurrentModule    = "currentModule"
	KeyConfigReloadedAt = "configReloadedAt"
	KeyBackendStatus    = "backendStatus"

	// llm
	KeyAvailableModels    = "availableModels"
	KeyAvailableProviders = "availableProviders"
	KeySelectedModels     = "selectedModels"
	KeyConfig             = "config"

	// summarization
	KeyOriginalText = "originalText"
	KeyMaxWords     = "maxWords"
	KeyResults      = "results"
	KeyEvaluations  = "evaluations"
	KeyWinner       = "winner"
	KeyIsComparing  = "isComparing"
	KeyHistory      = "history"

	// extraction
	KeyText         = "text"
	KeyFields       = "fields"
	KeyIsExtracting = "isExtracting"

	// documents
	KeyUploadedFiles   = "uploadedFiles"
	KeyProcessingFiles = "processingFiles"
)

// DefaultTree returns a fresh copy of the tree a new store starts with and
// ResetAll restores.
func DefaultTree() Tree {
	return Tree{
		App: {
			KeyLoading:       false,
			KeyError:         nil,
			KeyCurrentModule: "dashboard",
		},
		LLM: {
			KeyAvailableModels:    []string{},
			KeyAvailableProviders: []string{},
			KeySelectedModels:     []string{},
			KeyConfig: Fields{
				"temperature": 0.7,
				"maxTokens":   1000,
				"topP":        1.0,
				"topK":        50,
			},
		},
		Summarization: {
			KeyOriginalText: "",
			KeyMaxWords:     100,
			KeyResults:      nil,
			KeyEvaluations:  nil,
			KeyWinner:       "",
			KeyIsComparing:  false,
		},
		Extraction: {
			KeyText:         "",
			KeyFields:       []string{},
			KeyResults:      nil,
			KeyIsExtracting: false,
		},
		Documents: {
			KeyUploadedFiles:   []string{},
			KeyProcessingFiles: []string{},
			KeyResults:         nil,
		},
	}
}
