package summarization

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/grovetools/llmcompare/errors"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/state"
)

// User-facing validation messages.
const (
	MsgNoText        = "Please enter text to summarize"
	MsgTooFewModels  = "Please select at least 2 models"
	MsgTooManyModels = "Please select maximum 5 models"
	MsgBusy          = "A comparison is already running"
)

// comparisonPrefix starts every failed-comparison message.
const comparisonPrefix = "Error during comparison: "

// HistoryEntry records one finished comparison.
type HistoryEntry struct {
	At          time.Time
	Models      []string
	Winner      string
	WinnerScore float64
	TotalTime   float64
}

// BuildRequest assembles a comparison request from the store and validates
// it. Nothing is sent.
func (m *Module) BuildRequest() (models.CompareRequest, error) {
	text := strings.TrimSpace(m.Text())
	if text == "" {
		return models.CompareRequest{}, errors.Validation("text", MsgNoText)
	}
	selected := m.Selected()
	switch {
	case len(selected) < models.MinCompareModels:
		return models.CompareRequest{}, errors.Validation("models", MsgTooFewModels).
			WithDetail("selected", len(selected))
	case len(selected) > models.MaxCompareModels:
		return models.CompareRequest{}, errors.Validation("models", MsgTooManyModels).
			WithDetail("selected", len(selected))
	}

	params := m.Params()
	return models.CompareRequest{
		Text:      text,
		Models:    selected,
		MaxWords:  params.MaxWords,
		LLMConfig: params.LLM,
	}, nil
}

// Comparing reports whether a comparison is in flight.
func (m *Module) Comparing() bool {
	return state.ValueOr(m.store.ReadModule(state.Summarization), state.KeyIsComparing, false)
}

// StartComparison validates the input, runs the comparison and writes the
// outcome into the summarization namespace. Validation failures return before
// any request is made. Every failure is also shown through app.error.
func (m *Module) StartComparison(ctx context.Context) (*models.ComparisonResponse, error) {
	req, err := m.BuildRequest()
	if err != nil {
		m.showError(errors.Message(err))
		return nil, err
	}
	if !m.running.CompareAndSwap(false, true) {
		m.showError(MsgBusy)
		return nil, errors.Validation("comparison", MsgBusy)
	}
	defer m.running.Store(false)

	m.store.Write(state.Summarization, state.Fields{state.KeyIsComparing: true})
	m.store.Write(state.App, state.Fields{state.KeyLoading: true})
	defer m.store.Write(state.App, state.Fields{state.KeyLoading: false})

	log := m.logger.WithField("models", strings.Join(req.Models, ","))
	log.Info("Starting comparison")

	resp, err := m.client.CompareSummaries(ctx, req)
	if err != nil {
		msg := ComparisonErrorMessage(err)
		log.WithError(err).Error("Comparison failed")
		m.store.Write(state.Summarization, state.Fields{state.KeyIsComparing: false})
		m.showError(msg)
		return nil, errors.Wrap(err, errors.CodeOr(err, errors.ErrCodeInternal), msg)
	}

	entry := HistoryEntry{
		At:        m.now(),
		Models:    req.Models,
		Winner:    resp.Winner,
		TotalTime: resp.TotalExecutionTime,
	}
	if eval, ok := resp.EvaluationFor(resp.Winner); ok {
		entry.WinnerScore = eval.AverageScore
	}
	if entry.TotalTime == 0 {
		for _, r := range resp.Results {
			entry.TotalTime += r.ExecutionTime
		}
	}
	history := state.ValueOr(m.store.ReadModule(state.Summarization), state.KeyHistory, []HistoryEntry(nil))

	m.store.Write(state.Summarization, state.Fields{
		state.KeyResults:     resp.Results,
		state.KeyEvaluations: resp.Evaluations,
		state.KeyWinner:      resp.Winner,
		state.KeyIsComparing: false,
		state.KeyHistory:     append(append([]HistoryEntry(nil), history...), entry),
	})
	log.WithField("winner", resp.Winner).Info("Comparison completed")
	return resp, nil
}

// ComparisonErrorMessage turns a comparison failure into the banner text.
func ComparisonErrorMessage(err error) string {
	switch {
	case errors.Is(err, errors.ErrCodeTimeout), errors.Is(err, errors.ErrCodeCancelled):
		return comparisonPrefix + "Request was cancelled or timed out. Please try again with fewer models or shorter text."
	}
	if status, ok := errors.StatusCode(err); ok {
		switch status {
		case http.StatusInternalServerError:
			return comparisonPrefix + "Server error. Please try again later."
		case http.StatusUnprocessableEntity:
			return comparisonPrefix + "Invalid request. Please check your input."
		}
	}
	return comparisonPrefix + errors.Message(err)
}

// History returns the finished comparisons, oldest first.
func History(s *state.Store) []HistoryEntry {
	return state.ValueOr(s.ReadModule(state.Summarization), state.KeyHistory, []HistoryEntry(nil))
}

func (h HistoryEntry) String() string {
	return fmt.Sprintf("%s: %s won (%.1f/%d) among %s",
		h.At.Format(time.Kitchen), h.Winner, h.WinnerScore, models.MaxSampleScore, strings.Join(h.Models, ", "))
}
