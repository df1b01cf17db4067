// Package dashboard is the landing page and the router's fallback module. It
// summarizes the catalog, past comparisons and backend health.
package dashboard

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/logging"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/pkg/modules/summarization"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/tui/keymap"
)

// Name is the module's route table name.
const Name = "dashboard"

// Values written to app.backendStatus besides the backend's own status.
const (
	StatusUnknown     = "unknown"
	StatusUnreachable = "unreachable"
)

// recentComparisons is how many history entries the page lists.
const recentComparisons = 5

// Client is the part of the backend API the dashboard uses.
type Client interface {
	Health(ctx context.Context) (*models.HealthResponse, error)
}

// Stats are the numbers shown on the dashboard.
type Stats struct {
	Models      int
	Providers   int
	Comparisons int
	// AverageScore is the mean winner score, valid when Comparisons > 0.
	AverageScore float64
	Backend      string
	CheckedAt    time.Time
	Recent       []summarization.HistoryEntry
}

// Module implements the dashboard page.
type Module struct {
	client Client
	store  *state.Store
	logger *logrus.Entry
	now    func() time.Time
	ctx    context.Context
	keys   keymap.Config

	mu        sync.Mutex
	checkedAt time.Time

	ui *ui
}

// Option configures a Module.
type Option func(*Module)

// WithLogger overrides the module logger.
func WithLogger(logger *logrus.Entry) Option {
	return func(m *Module) { m.logger = logger }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Module) { m.now = now }
}

// WithContext bounds health checks started from the TUI.
func WithContext(ctx context.Context) Option {
	return func(m *Module) { m.ctx = ctx }
}

// WithKeyConfig applies keybinding overrides to the page.
func WithKeyConfig(kc keymap.Config) Option {
	return func(m *Module) { m.keys = kc }
}

// New creates the dashboard module.
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
		m.logger = logging.NewLogger(Name)
	}
	m.ui = newUI(m)
	return m
}

func (m *Module) Name() string  { return Name }
func (m *Module) Title() string { return "Dashboard" }

// Init has nothing to set up; the page reads the store on every render.
func (m *Module) Init(ctx context.Context) error {
	m.logger.Debug("Dashboard initialized")
	return nil
}

// Render refreshes the backend health shown on the page.
func (m *Module) Render(ctx context.Context) error {
	_, _ = m.CheckHealth(ctx)
	return nil
}

// CheckHealth asks the backend for its status and writes the outcome to
// app.backendStatus. An unreachable backend is reported, not raised.
func (m *Module) CheckHealth(ctx context.Context) (string, error) {
	status := StatusUnreachable
	resp, err := m.client.Health(ctx)
	if err != nil {
		m.logger.WithError(err).WithField("code", errors.GetCode(err)).Warn("Backend health check failed")
	} else {
		status = resp.Status
		if status == "" {
			status = StatusUnknown
		}
	}
	m.mu.Lock()
	m.checkedAt = m.now()
	m.mu.Unlock()
	m.store.Write(state.App, state.Fields{state.KeyBackendStatus: status})
	return status, err
}

// Stats derives the dashboard numbers from the store.
func (m *Module) Stats() Stats {
	llm := m.store.ReadModule(state.LLM)
	available := state.ValueOr(llm, state.KeyAvailableModels, []string(nil))
	providers := state.ValueOr(llm, state.KeyAvailableProviders, []string(nil))
	if len(providers) == 0 {
		providers = inferProviders(available)
	}

	history := summarization.History(m.store)
	s := Stats{
		Models:      len(available),
		Providers:   len(providers),
		Comparisons: len(history),
		Backend:     state.ValueOr(m.store.ReadModule(state.App), state.KeyBackendStatus, StatusUnknown),
	}
	m.mu.Lock()
	s.CheckedAt = m.checkedAt
	m.mu.Unlock()
	if len(history) > 0 {
		var total float64
		for _, h := range history {
			total += h.WinnerScore
		}
		s.AverageScore = total / float64(len(history))
	}

	recent := history[max(0, len(history)-recentComparisons):]
	s.Recent = make([]summarization.HistoryEntry, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		s.Recent = append(s.Recent, recent[i])
	}
	return s
}

// inferProviders lists the known providers found among the model names.
func inferProviders(available []string) []string {
	var out []string
	for _, model := range available {
		p := models.ProviderOf(model)
		if p == models.ProviderUnknown || slices.Contains(out, string(p)) {
			continue
		}
		out = append(out, string(p))
	}
	return out
}
