package summarization

import (
	"fmt"
	"math"

	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/state"
)

// Params are the generation settings sent with a comparison.
type Params struct {
	LLM      models.LLMConfig
	MaxWords int
}

// Param names accepted by SetParam.
const (
	ParamTemperature = "temperature"
	ParamTopP        = "top_p"
	ParamTopK        = "top_k"
	ParamMaxTokens   = "max_tokens"
	ParamMaxWords    = "max_words"
)

// ParamSpec describes one adjustable parameter.
type ParamSpec struct {
	Name  string
	Label string
	Step  float64
	Min   float64
	Max   float64
}

// ParamSpecs lists the adjustable parameters in display order.
var ParamSpecs = []ParamSpec{
	{ParamTemperature, "Temperature", 0.1, models.MinTemperature, models.MaxTemperature},
	{ParamTopP, "Top P", 0.05, models.MinTopP, models.MaxTopP},
	{ParamTopK, "Top K", 1, models.MinTopK, models.MaxTopK},
	{ParamMaxTokens, "Max tokens", 100, models.MinMaxTokens, models.MaxMaxTokens},
	{ParamMaxWords, "Max words", 10, models.MinMaxWords, models.MaxMaxWords},
}

// store keys inside llm.config
const (
	cfgTemperature = "temperature"
	cfgTopP        = "topP"
	cfgTopK        = "topK"
	cfgMaxTokens   = "maxTokens"
)

// Params reads the current settings from the store, clamped to the ranges
// the backend accepts.
func (m *Module) Params() Params {
	cfg := models.DefaultLLMConfig()
	llmCfg, _ := state.Value[state.Fields](m.store.ReadModule(state.LLM), state.KeyConfig)
	if v, ok := state.Number(llmCfg, cfgTemperature); ok {
		cfg.Temperature = v
	}
	if v, ok := state.Number(llmCfg, cfgTopP); ok {
		cfg.TopP = v
	}
	if v, ok := state.Number(llmCfg, cfgTopK); ok {
		cfg.TopK = int(v)
	}
	if v, ok := state.Number(llmCfg, cfgMaxTokens); ok {
		cfg.MaxTokens = int(v)
	}

	maxWords := models.DefaultMaxWords
	if v, ok := state.Number(m.store.ReadModule(state.Summarization), state.KeyMaxWords); ok {
		maxWords = int(v)
	}
	return Params{LLM: cfg.Clamp(), MaxWords: clampWords(maxWords)}
}

// SetParam sets one parameter, clamping it into range, and returns the
// resulting settings.
func (m *Module) SetParam(name string, value float64) (Params, error) {
	spec, ok := specFor(name)
	if !ok {
		return m.Params(), errors.Validation(name, fmt.Sprintf("unknown parameter %q", name))
	}
	value = math.Max(spec.Min, math.Min(spec.Max, value))

	if name == ParamMaxWords {
		m.store.Write(state.Summarization, state.Fields{state.KeyMaxWords: int(math.Round(value))})
		return m.Params(), nil
	}

	llmCfg := state.Clone(state.ValueOr(m.store.ReadModule(state.LLM), state.KeyConfig, state.Fields{}))
	switch name {
	case ParamTemperature:
		llmCfg[cfgTemperature] = roundTo(value, 2)
	case ParamTopP:
		llmCfg[cfgTopP] = roundTo(value, 2)
	case ParamTopK:
		llmCfg[cfgTopK] = int(math.Round(value))
	case ParamMaxTokens:
		llmCfg[cfgMaxTokens] = int(math.Round(value))
	}
	m.store.Write(state.LLM, state.Fields{state.KeyConfig: llmCfg})
	return m.Params(), nil
}

// Adjust moves a parameter by steps increments of its step size.
func (m *Module) Adjust(name string, steps int) (Params, error) {
	spec, ok := specFor(name)
	if !ok {
		return m.Params(), errors.Validation(name, fmt.Sprintf("unknown parameter %q", name))
	}
	return m.SetParam(name, m.Params().Value(name)+float64(steps)*spec.Step)
}

// Value returns the named parameter as a float.
func (p Params) Value(name string) float64 {
	switch name {
	case ParamTemperature:
		return p.LLM.Temperature
	case ParamTopP:
		return p.LLM.TopP
	case ParamTopK:
		return float64(p.LLM.TopK)
	case ParamMaxTokens:
		return float64(p.LLM.MaxTokens)
	case ParamMaxWords:
		return float64(p.MaxWords)
	}
	return 0
}

// Display formats the named parameter for the settings panel.
func (p Params) Display(name string) string {
	switch name {
	case ParamTemperature, ParamTopP:
		return fmt.Sprintf("%.2f", p.Value(name))
	default:
		return fmt.Sprintf("%d", int(p.Value(name)))
	}
}

func specFor(name string) (ParamSpec, bool) {
	for _, s := range ParamSpecs {
		if s.Name == name {
			return s, true
		}
	}
	return ParamSpec{}, false
}

func clampWords(n int) int {
	return max(models.MinMaxWords, min(models.MaxMaxWords, n))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
