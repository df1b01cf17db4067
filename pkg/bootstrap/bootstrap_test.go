package bootstrap_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/llmcompare/config"
	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/pkg/api"
	"github.com/grovetools/llmcompare/pkg/bootstrap"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/testutil"
)

func TestSeed(t *testing.T) {
	store := state.New(state.WithLogger(testutil.DiscardLogger()))
	cfg := config.Default()
	cfg.LLM.Temperature = 0.2
	cfg.Summarization.MaxWords = 250

	bootstrap.Seed(store, cfg)

	llmCfg, ok := state.Value[state.Fields](store.ReadModule(state.LLM), state.KeyConfig)
	require.True(t, ok)
	assert.Equal(t, state.Fields{"temperature": 0.2, "topP": 1.0, "topK": 50, "maxTokens": 1000}, llmCfg)
	assert.Equal(t, 250, store.ReadModule(state.Summarization)[state.KeyMaxWords])
}

func TestLoad(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.JSON(http.MethodGet, api.PathLLMConfig, http.StatusOK, models.LLMConfigResponse{
		CurrentConfig:      models.LLMConfig{Temperature: 0.9, MaxTokens: 2000},
		AvailableModels:    []string{"gpt-4", "claude-3"},
		AvailableProviders: []string{"openai", "anthropic"},
	})
	backend.JSON(http.MethodGet, api.PathSummarizationConfig, http.StatusOK, models.SummarizationConfig{DefaultMaxWords: 150})

	store := state.New(state.WithLogger(testutil.DiscardLogger()))
	bootstrap.Seed(store, config.Default())

	var loading []any
	store.AddListener(state.App, func(next, prev state.Fields) error {
		loading = append(loading, next[state.KeyLoading])
		return nil
	})

	err := bootstrap.Load(context.Background(), backend.Client(t), store, testutil.DiscardLogger())
	require.NoError(t, err)

	llm := store.ReadModule(state.LLM)
	assert.Equal(t, []string{"gpt-4", "claude-3"}, llm[state.KeyAvailableModels])
	assert.Equal(t, []string{"openai", "anthropic"}, llm[state.KeyAvailableProviders])
	assert.Equal(t, state.Fields{"temperature": 0.9, "topP": 1.0, "topK": 50, "maxTokens": 2000}, llm[state.KeyConfig])
	assert.Equal(t, 150, store.ReadModule(state.Summarization)[state.KeyMaxWords])
	assert.Equal(t, []any{true, false}, loading)
}

func TestLoadPartialFailure(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.JSON(http.MethodGet, api.PathSummarizationConfig, http.StatusOK, models.SummarizationConfig{DefaultMaxWords: 80})

	store := state.New(state.WithLogger(testutil.DiscardLogger()))
	bootstrap.Seed(store, config.Default())

	err := bootstrap.Load(context.Background(), backend.Client(t), store, testutil.DiscardLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeHTTPStatus))

	assert.Equal(t, 80, store.ReadModule(state.Summarization)[state.KeyMaxWords], "the other fetch still lands")
	assert.Equal(t, []string{}, store.ReadModule(state.LLM)[state.KeyAvailableModels])
	assert.Equal(t, false, store.ReadModule(state.App)[state.KeyLoading])
}
