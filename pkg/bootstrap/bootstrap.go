// Package bootstrap fills the store with configuration defaults and the
// backend's initial data before the first page is shown.
package bootstrap

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/grovetools/llmcompare/config"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/state"
)

// Client is the part of the backend API used at startup.
type Client interface {
	LLMConfig(ctx context.Context) (*models.LLMConfigResponse, error)
	SummarizationConfig(ctx context.Context) (*models.SummarizationConfig, error)
}

// Seed writes the configured generation defaults into llm.config and
// summarization.maxWords.
func Seed(store *state.Store, cfg *config.Config) {
	if cfg == nil {
		cfg = config.Default()
	}
	store.Write(state.LLM, state.Fields{state.KeyConfig: state.Fields{
		"temperature": cfg.LLM.Temperature,
		"topP":        cfg.LLM.TopP,
		"topK":        cfg.LLM.TopK,
		"maxTokens":   cfg.LLM.MaxTokens,
	}})
	store.Write(state.Summarization, state.Fields{state.KeyMaxWords: cfg.Summarization.MaxWords})
}

// Load fetches the LLM configuration and the summarization defaults in
// parallel. app.loading is set for the duration. Both fetches always run to
// completion; failures are logged and the first one is returned, so the
// caller may ignore it and keep the seeded defaults.
func Load(ctx context.Context, client Client, store *state.Store, logger *logrus.Entry) error {
	store.Write(state.App, state.Fields{state.KeyLoading: true})
	defer store.Write(state.App, state.Fields{state.KeyLoading: false})

	var g errgroup.Group
	g.Go(func() error {
		resp, err := client.LLMConfig(ctx)
		if err != nil {
			logger.WithError(err).Warn("Could not load LLM configuration")
			return err
		}
		store.Write(state.LLM, llmFields(resp, store.ReadModule(state.LLM)))
		logger.WithField("models", len(resp.AvailableModels)).Debug("LLM configuration loaded")
		return nil
	})
	g.Go(func() error {
		resp, err := client.SummarizationConfig(ctx)
		if err != nil {
			logger.WithError(err).Warn("Could not load summarization configuration")
			return err
		}
		if resp.DefaultMaxWords > 0 {
			store.Write(state.Summarization, state.Fields{state.KeyMaxWords: resp.DefaultMaxWords})
		}
		return nil
	})
	return g.Wait()
}

// llmFields overlays the backend's non-zero current config on the seeded one.
func llmFields(resp *models.LLMConfigResponse, current state.Fields) state.Fields {
	seeded, _ := state.Value[state.Fields](current, state.KeyConfig)
	cfg := state.Clone(seeded)
	cc := resp.CurrentConfig
	if cc.Temperature > 0 {
		cfg["temperature"] = cc.Temperature
	}
	if cc.TopP > 0 {
		cfg["topP"] = cc.TopP
	}
	if cc.TopK > 0 {
		cfg["topK"] = cc.TopK
	}
	if cc.MaxTokens > 0 {
		cfg["maxTokens"] = cc.MaxTokens
	}

	return state.Fields{
		state.KeyAvailableModels:    nonNil(resp.AvailableModels),
		state.KeyAvailableProviders: nonNil(resp.AvailableProviders),
		state.KeyConfig:             cfg,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
