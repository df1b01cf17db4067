// Package summarization is the model comparison feature: pick models, paste a
// text, and compare the summaries the backend produces and scores.
package summarization

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/logging"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/tui/keymap"
)

// Name is the module's route table name.
const Name = "summarization"

// Client is the part of the backend API the module uses.
type Client interface {
	ListModels(ctx context.Context) (*models.ModelsResponse, error)
	SummarizationConfig(ctx context.Context) (*models.SummarizationConfig, error)
	CompareSummaries(ctx context.Context, req models.CompareRequest) (*models.ComparisonResponse, error)
}

// catalogState tracks the model catalog fetch.
type catalogState int

const (
	catalogIdle catalogState = iota
	catalogLoading
	catalogReady
	catalogFailed
)

// Module implements the summarization feature. Its data lives in the store;
// the module only caches the report derived from the latest results.
type Module struct {
	client Client
	store  *state.Store
	logger *logrus.Entry
	now    func() time.Time
	// ctx bounds comparisons started from the TUI.
	ctx  context.Context
	keys keymap.Config

	mu      sync.RWMutex
	report  *Report
	catalog catalogState
	running atomic.Bool

	ui *ui
}

// Option configures a Module.
type Option func(*Module)

// WithLogger sets the module's logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(m *Module) {
		m.logger = logger
	}
}

// WithClock sets the clock used to timestamp history entries.
func WithClock(now func() time.Time) Option {
	return func(m *Module) {
		m.now = now
	}
}

// WithContext sets the context comparisons started from the TUI run under.
func WithContext(ctx context.Context) Option {
	return func(m *Module) {
		m.ctx = ctx
	}
}

// WithKeyConfig applies user keybinding overrides to the page's keymap.
func WithKeyConfig(kc keymap.Config) Option {
	return func(m *Module) {
		m.keys = kc
	}
}

// New creates the module. Call Init (normally through the router) before use.
func New(client Client, store *state.Store, opts ...Option) *Module {
	m := &Module{
		client: client,
		store:  store,
		now:    time.Now,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.NewLogger("summarization")
	}
	m.ui = newUI(m)
	return m
}

func (m *Module) Name() string  { return Name }
func (m *Module) Title() string { return "Summarization" }

// Init subscribes to the summarization and llm namespaces and loads the
// backend's summarization defaults. A failed config fetch is only logged.
func (m *Module) Init(ctx context.Context) error {
	m.store.AddListener(state.Summarization, m.onSummarizationChange)
	m.store.AddListener(state.LLM, m.onLLMChange)
	m.rebuildReport(m.store.ReadModule(state.Summarization))

	cfg, err := m.client.SummarizationConfig(ctx)
	if err != nil {
		m.logger.WithError(err).Warn("Could not load summarization config")
		return nil
	}
	maxWords := cfg.DefaultMaxWords
	if maxWords == 0 {
		maxWords = models.DefaultMaxWords
	}
	m.store.Write(state.Summarization, state.Fields{state.KeyMaxWords: maxWords})
	return nil
}

// Render makes sure the model catalog is available, preferring what is
// already in the llm namespace over a new request.
func (m *Module) Render(ctx context.Context) error {
	if len(m.AvailableModels()) > 0 {
		m.setCatalog(catalogReady)
		return nil
	}

	m.setCatalog(catalogLoading)
	resp, err := m.client.ListModels(ctx)
	if err != nil {
		m.setCatalog(catalogFailed)
		m.showError("Error loading available models: " + errors.Message(err))
		return nil
	}

	fields := state.Fields{state.KeyAvailableModels: nonNil(resp.AvailableModels)}
	if len(resp.AvailableProviders) > 0 {
		fields[state.KeyAvailableProviders] = resp.AvailableProviders
	}
	m.store.Write(state.LLM, fields)
	m.setCatalog(catalogReady)
	return nil
}

// Report returns the report derived from the latest comparison, or nil.
func (m *Module) Report() *Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.report
}

func (m *Module) catalogState() catalogState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog
}

func (m *Module) setCatalog(s catalogState) {
	m.mu.Lock()
	m.catalog = s
	m.mu.Unlock()
}

func (m *Module) onSummarizationChange(next, prev state.Fields) error {
	m.rebuildReport(next)
	return nil
}

func (m *Module) rebuildReport(fields state.Fields) {
	results, _ := state.Value[[]models.ModelResult](fields, state.KeyResults)
	evaluations, _ := state.Value[[]models.Evaluation](fields, state.KeyEvaluations)
	winner, _ := state.Value[string](fields, state.KeyWinner)

	var report *Report
	if len(results) > 0 {
		report = BuildReport(results, evaluations, winner)
	}
	m.mu.Lock()
	m.report = report
	m.mu.Unlock()
}

// onLLMChange drops selected models that left the catalog.
func (m *Module) onLLMChange(next, prev state.Fields) error {
	available, _ := state.Value[[]string](next, state.KeyAvailableModels)
	if len(available) == 0 {
		return nil
	}
	selected, _ := state.Value[[]string](next, state.KeySelectedModels)
	kept := make([]string, 0, len(selected))
	for _, model := range selected {
		if slices.Contains(available, model) {
			kept = append(kept, model)
		}
	}
	if len(kept) != len(selected) {
		m.logger.WithField("dropped", len(selected)-len(kept)).Debug("Pruning selection to catalog")
		m.store.Write(state.LLM, state.Fields{state.KeySelectedModels: kept})
	}
	return nil
}

func (m *Module) showError(msg string) {
	m.store.Write(state.App, state.Fields{state.KeyError: msg})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
