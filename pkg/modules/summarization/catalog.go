package summarization

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/state"
)

// FilterAll matches every provider.
const FilterAll = "all"

// Filter narrows the model catalog by provider and a search term.
type Filter struct {
	// Provider is FilterAll or a models.Provider key.
	Provider string
	// Search matches model or provider names, case-insensitively.
	Search string
}

// Match reports whether model passes the filter.
func (f Filter) Match(model string) bool {
	provider := string(models.ProviderOf(model))
	if f.Provider != "" && f.Provider != FilterAll && provider != f.Provider {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(model), term) || strings.Contains(provider, term)
}

// Apply returns the models that pass the filter, in catalog order.
func (f Filter) Apply(all []string) []string {
	out := make([]string, 0, len(all))
	for _, model := range all {
		if f.Match(model) {
			out = append(out, model)
		}
	}
	return out
}

// FilterOptions lists the provider filters in display order.
func FilterOptions() []string {
	opts := []string{FilterAll}
	for _, p := range models.Providers {
		opts = append(opts, string(p))
	}
	return opts
}

// NextFilter returns the provider filter after current, wrapping around.
func NextFilter(current string) string {
	opts := FilterOptions()
	i := slices.Index(opts, current)
	return opts[(i+1)%len(opts)]
}

// AvailableModels returns the catalog held in the llm namespace.
func (m *Module) AvailableModels() []string {
	return state.ValueOr(m.store.ReadModule(state.LLM), state.KeyAvailableModels, []string(nil))
}

// Selected returns the selected models in selection order.
func (m *Module) Selected() []string {
	return state.ValueOr(m.store.ReadModule(state.LLM), state.KeySelectedModels, []string(nil))
}

// Toggle selects model, or deselects it when already selected, and returns
// the new selection.
func (m *Module) Toggle(model string) []string {
	selected := m.Selected()
	var next []string
	if slices.Contains(selected, model) {
		next = slices.DeleteFunc(slices.Clone(selected), func(s string) bool { return s == model })
	} else {
		next = append(slices.Clone(selected), model)
	}
	m.store.Write(state.LLM, state.Fields{state.KeySelectedModels: next})
	return next
}

// Remove deselects model.
func (m *Module) Remove(model string) {
	selected := m.Selected()
	if !slices.Contains(selected, model) {
		return
	}
	next := slices.DeleteFunc(slices.Clone(selected), func(s string) bool { return s == model })
	m.store.Write(state.LLM, state.Fields{state.KeySelectedModels: next})
}

// SetSelection replaces the selection.
func (m *Module) SetSelection(selected []string) {
	m.store.Write(state.LLM, state.Fields{state.KeySelectedModels: slices.Clone(nonNil(selected))})
}

// TextStats counts the words and characters of the input text.
type TextStats struct {
	Words      int
	Characters int
}

// StatsOf returns the word and character counts of text.
func StatsOf(text string) TextStats {
	return TextStats{
		Words:      len(strings.Fields(text)),
		Characters: utf8.RuneCountInString(text),
	}
}

// Text returns the text to summarize.
func (m *Module) Text() string {
	return state.ValueOr(m.store.ReadModule(state.Summarization), state.KeyOriginalText, "")
}

// SetText stores the text to summarize and returns its stats.
func (m *Module) SetText(text string) TextStats {
	m.store.Write(state.Summarization, state.Fields{state.KeyOriginalText: text})
	return StatsOf(text)
}
