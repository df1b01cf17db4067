package summarization_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/llmcompare/pkg/api"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/pkg/modules/summarization"
	"github.com/grovetools/llmcompare/state"
	"github.com/grovetools/llmcompare/testutil"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and any batch it returns, collecting the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestViewCatalogStates(t *testing.T) {
	t.Run("loading before the first render", func(t *testing.T) {
		h := newHarness(t)
		assert.Contains(t, h.module.View(120, 40), "Loading models...")
	})

	t.Run("empty catalog", func(t *testing.T) {
		h := newHarness(t)
		h.backend.JSON(http.MethodGet, api.PathModels, http.StatusOK, models.ModelsResponse{AvailableModels: []string{}})
		require.NoError(t, h.module.Render(context.Background()))

		view := h.module.View(120, 40)
		assert.Contains(t, view, "No Models Available")
		assert.NotContains(t, view, "Loading models...")
	})

	t.Run("filter without matches", func(t *testing.T) {
		h := newHarness(t)
		h.store.Write(state.LLM, state.Fields{state.KeyAvailableModels: []string{"gpt-4"}})

		h.module.Update(tea.KeyMsg{Type: tea.KeyTab}) // models pane
		h.module.Update(keyRunes("p"))                // openai
		assert.Contains(t, h.module.View(120, 40), "gpt-4")

		h.module.Update(keyRunes("p")) // anthropic
		assert.Contains(t, h.module.View(120, 40), "No Models Found")
	})
}

func TestViewSelectionAndStats(t *testing.T) {
	h := newHarness(t)
	h.store.Write(state.LLM, state.Fields{state.KeyAvailableModels: []string{"gpt-4", "claude-3"}})
	h.module.SetText("one two three")

	h.module.Update(tea.KeyMsg{Type: tea.KeyTab})
	h.module.Update(keyRunes(" "))
	h.module.Update(tea.KeyMsg{Type: tea.KeyDown})
	h.module.Update(keyRunes(" "))
	assert.Equal(t, []string{"gpt-4", "claude-3"}, h.module.Selected())

	view := h.module.View(120, 40)
	assert.Contains(t, view, "Selected (2/5)")
	assert.Contains(t, view, "3 words")
	assert.Contains(t, view, "13 characters")

	h.module.Update(keyRunes("x"))
	assert.Equal(t, []string{"gpt-4"}, h.module.Selected())
}

func TestEditingCapturesKeys(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.module.Capturing())

	h.module.Update(keyRunes("e"))
	require.True(t, h.module.Capturing())

	h.module.Update(keyRunes("q"))
	h.module.Update(keyRunes("x"))
	assert.Equal(t, "qx", h.module.Text())

	h.module.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, h.module.Capturing())
	assert.Equal(t, "qx", h.module.Text())
}

func TestSearchCapturesKeys(t *testing.T) {
	h := newHarness(t)
	h.store.Write(state.LLM, state.Fields{state.KeyAvailableModels: []string{"gpt-4", "claude-3"}})

	h.module.Update(tea.KeyMsg{Type: tea.KeyTab})
	h.module.Update(keyRunes("/"))
	require.True(t, h.module.Capturing())

	h.module.Update(keyRunes("cla"))
	h.module.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, h.module.Capturing())

	view := h.module.View(120, 40)
	assert.Contains(t, view, "claude-3")
	assert.NotContains(t, view, "gpt-4")
}

func TestCompareKeyValidatesWithoutRequest(t *testing.T) {
	h := newHarness(t)
	h.module.SetSelection([]string{"gpt-4"})

	msgs := runCmd(h.module.Update(tea.KeyMsg{Type: tea.KeyCtrlS}))

	var done *summarization.ComparisonDoneMsg
	for _, msg := range msgs {
		if d, ok := msg.(summarization.ComparisonDoneMsg); ok {
			done = &d
		}
	}
	require.NotNil(t, done)
	require.Error(t, done.Err)
	assert.Zero(t, h.backend.Count(http.MethodPost, api.PathCompare))
	assert.Equal(t, summarization.MsgNoText, h.store.ReadModule(state.App)[state.KeyError])
}

func TestCompareKeyShowsResults(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.module.Init(context.Background()))
	h.backend.JSON(http.MethodPost, api.PathCompare, http.StatusOK,
		testutil.Comparison("gpt-4", "gpt-4", "claude-3", "gemini-pro"))
	h.ready(testutil.SampleText, "gpt-4", "claude-3", "gemini-pro")

	for _, msg := range runCmd(h.module.Update(tea.KeyMsg{Type: tea.KeyCtrlS})) {
		h.module.Update(msg)
	}

	view := h.module.View(140, 200)
	assert.Equal(t, 1, strings.Count(view, "WINNER"), "exactly one winner badge")
	assert.Contains(t, view, "Best Overall: gpt-4")
	assert.Contains(t, view, "claude-3")
	assert.Contains(t, view, "gemini-pro")
}

func TestViewWhileComparing(t *testing.T) {
	h := newHarness(t)
	h.store.Write(state.Summarization, state.Fields{state.KeyIsComparing: true})
	assert.Contains(t, h.module.View(120, 40), "Comparing models... This may take a few minutes")
}

func TestParamsPane(t *testing.T) {
	h := newHarness(t)

	h.module.Update(tea.KeyMsg{Type: tea.KeyShiftTab}) // results
	h.module.Update(tea.KeyMsg{Type: tea.KeyShiftTab}) // parameters
	h.module.Update(tea.KeyMsg{Type: tea.KeyRight})    // temperature +0.1
	assert.InDelta(t, 0.8, h.module.Params().LLM.Temperature, 1e-9)

	h.module.Update(tea.KeyMsg{Type: tea.KeyDown})
	h.module.Update(tea.KeyMsg{Type: tea.KeyRight}) // top p stays at its ceiling
	assert.Equal(t, models.MaxTopP, h.module.Params().LLM.TopP)
}

func TestStoreChangeRefreshesText(t *testing.T) {
	h := newHarness(t)
	h.module.SetText("from the command line")

	h.module.Update(state.Change{Namespace: state.Summarization})
	assert.Contains(t, h.module.View(120, 40), "from the command line")
}
