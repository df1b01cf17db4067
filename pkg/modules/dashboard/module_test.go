package dashboard_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/pkg/api"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/pkg/modules/dashboard"
	"github.com/grovetools/llmcompare/pkg/modules/summarization"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func newModule(t *testing.T) (*dashboard.Module, *testutil.FakeBackend, *state.Store) {
	t.Helper()
	backend := testutil.NewFakeBackend(t)
	store := state.New(state.WithLogger(testutil.DiscardLogger()))
	m := dashboard.New(backend.Client(t), store,
		dashboard.WithLogger(testutil.DiscardLogger()),
		dashboard.WithClock(func() time.Time { return fixedNow }),
	)
	return m, backend, store
}

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		want    string
		wantErr bool
	}{
		{"healthy", http.StatusOK, models.HealthResponse{Status: "healthy"}, "healthy", false},
		{"degraded", http.StatusOK, models.HealthResponse{Status: "degraded"}, "degraded", false},
		{"empty status", http.StatusOK, map[string]any{}, dashboard.StatusUnknown, false},
		{"server error", http.StatusInternalServerError, map[string]string{"detail": "boom"}, dashboard.StatusUnreachable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, backend, store := newModule(t)
			backend.JSON(http.MethodGet, api.PathHealth, tt.status, tt.body)

			got, err := m.CheckHealth(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeHTTPStatus))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, store.ReadModule(state.App)[state.KeyBackendStatus])
			assert.Equal(t, fixedNow, m.Stats().CheckedAt)
		})
	}
}

func TestRenderNeverFails(t *testing.T) {
	m, _, store := newModule(t)
	require.NoError(t, m.Init(context.Background()))
	require.NoError(t, m.Render(context.Background()))
	assert.Equal(t, dashboard.StatusUnreachable, store.ReadModule(state.App)[state.KeyBackendStatus])
}

func TestStats(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		m, _, _ := newModule(t)
		s := m.Stats()
		assert.Zero(t, s.Models)
		assert.Zero(t, s.Providers)
		assert.Zero(t, s.Comparisons)
		assert.Equal(t, dashboard.StatusUnknown, s.Backend)
		assert.Empty(t, s.Recent)
	})

	t.Run("providers from the backend", func(t *testing.T) {
		m, _, store := newModule(t)
		store.Write(state.LLM, state.Fields{
			state.KeyAvailableModels:    []string{"gpt-4", "gpt-3.5-turbo", "claude-3"},
			state.KeyAvailableProviders: []string{"openai", "anthropic", "google"},
		})
		s := m.Stats()
		assert.Equal(t, 3, s.Models)
		assert.Equal(t, 3, s.Providers)
	})

	t.Run("providers inferred from names", func(t *testing.T) {
		m, _, store := newModule(t)
		store.Write(state.LLM, state.Fields{
			state.KeyAvailableModels: []string{"gpt-4", "gpt-3.5-turbo", "claude-3", "mistral-large"},
		})
		assert.Equal(t, 2, m.Stats().Providers)
	})

	t.Run("history", func(t *testing.T) {
		m, _, store := newModule(t)
		var history []summarization.HistoryEntry
		for i := range 7 {
			history = append(history, summarization.HistoryEntry{
				At:          fixedNow.Add(time.Duration(i) * time.Minute),
				Models:      []string{"gpt-4", "claude-3"},
				Winner:      "gpt-4",
				WinnerScore: float64(8 + i),
			})
		}
		store.Write(state.Summarization, state.Fields{state.KeyHistory: history})

		s := m.Stats()
		assert.Equal(t, 7, s.Comparisons)
		assert.InDelta(t, 11, s.AverageScore, 1e-9)
		require.Len(t, s.Recent, 5)
		assert.Equal(t, 14.0, s.Recent[0].WinnerScore, "newest first")
		assert.Equal(t, 10.0, s.Recent[4].WinnerScore)
	})
}

func TestView(t *testing.T) {
	m, backend, store := newModule(t)
	backend.JSON(http.MethodGet, api.PathHealth, http.StatusOK, models.HealthResponse{Status: "healthy"})

	view := m.View(120, 40)
	assert.Contains(t, view, "No comparisons yet")
	assert.Contains(t, view, "N/A")
	assert.Contains(t, view, dashboard.StatusUnknown)

	store.Write(state.Summarization, state.Fields{state.KeyHistory: []summarization.HistoryEntry{
		{At: fixedNow, Models: []string{"gpt-4", "claude-3"}, Winner: "claude-3", WinnerScore: 12},
	}})

	msg := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, msg)
	assert.Contains(t, m.View(120, 40), "checking")
	assert.Nil(t, m.Update(tea.KeyMsg{Type: tea.KeyCtrlR}), "one check at a time")

	done, ok := msg().(dashboard.HealthCheckedMsg)
	require.True(t, ok)
	assert.Equal(t, "healthy", done.Status)
	m.Update(done)

	view = m.View(120, 40)
	assert.Contains(t, view, "healthy")
	assert.Contains(t, view, "claude-3 won (12.0/15)")
	assert.Contains(t, view, "12.0/15")
	assert.False(t, m.Capturing())
}
