package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/grovetools/llmcompare/pkg/models"
)

// Backend paths.
const (
	PathModels              = "/llm/models"
	PathLLMConfig           = "/llm/config"
	PathTestModel           = "/llm/test/"
	PathCompare             = "/summarization/compare"
	PathSummarizationConfig = "/summarization/config"
	PathSummaryTest         = "/summarization/test"
	PathUpload              = "/documents/upload"
	PathExtractFields       = "/extraction/fields"
	PathHealth              = "/health"
)

// ListModels returns the models the backend can run.
func (c *Client) ListModels(ctx context.Context) (*models.ModelsResponse, error) {
	var out models.ModelsResponse
	if err := c.Get(ctx, PathModels, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LLMConfig returns the backend's default generation config and catalog.
func (c *Client) LLMConfig(ctx context.Context) (*models.LLMConfigResponse, error) {
	var out models.LLMConfigResponse
	if err := c.Get(ctx, PathLLMConfig, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TestModel runs the backend's canned prompt against one model.
func (c *Client) TestModel(ctx context.Context, model string, cfg models.LLMConfig) (*models.ModelTestResponse, error) {
	var out models.ModelTestResponse
	if err := c.Post(ctx, PathTestModel+url.PathEscape(model), cfg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompareSummaries asks every model in req to summarize the text and returns
// the evaluated comparison. This is the long-running call the default
// timeout is sized for.
func (c *Client) CompareSummaries(ctx context.Context, req models.CompareRequest) (*models.ComparisonResponse, error) {
	var out models.ComparisonResponse
	if err := c.Post(ctx, PathCompare, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SummarizationConfig returns the summarization module's backend settings.
func (c *Client) SummarizationConfig(ctx context.Context) (*models.SummarizationConfig, error) {
	var out models.SummarizationConfig
	if err := c.Get(ctx, PathSummarizationConfig, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TestSummary requests a single summary from one model. The backend reads
// these fields as query parameters; they are sent in the body as well.
func (c *Client) TestSummary(ctx context.Context, req models.SummaryTestRequest) (*models.SummaryTestResponse, error) {
	query := url.Values{}
	query.Set("text", req.Text)
	query.Set("model", req.Model)
	query.Set("max_words", strconv.Itoa(req.MaxWords))
	query.Set("temperature", strconv.FormatFloat(req.Temperature, 'f', -1, 64))

	var out models.SummaryTestResponse
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: PathSummaryTest, Query: query, Body: req}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadDocument sends a document as the multipart field "file".
func (c *Client) UploadDocument(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error) {
	var out models.UploadResponse
	if err := c.Upload(ctx, PathUpload, "file", filename, r, &out); err != nil {
		return nil, err
	}
	if out.Filename == "" {
		out.Filename = filename
	}
	return &out, nil
}

// ExtractFields asks the backend to pull named fields out of a text.
func (c *Client) ExtractFields(ctx context.Context, req models.ExtractionRequest) (*models.ExtractionResponse, error) {
	var out models.ExtractionResponse
	if err := c.Post(ctx, PathExtractFields, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health returns the backend's status payload.
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var out models.HealthResponse
	if err := c.Get(ctx, PathHealth, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
