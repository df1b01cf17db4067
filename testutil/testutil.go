// Package testutil provides a scriptable fake of the comparison backend and
// fixtures shared by package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/grovetools/llmcompare/pkg/api"
	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// RecordedRequest is a request the fake backend received.
type RecordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Header      http.Header
	Body        []byte
}

// FakeBackend is an httptest server with per-route canned handlers.
// Unregistered routes answer 404 with a FastAPI-style detail.
type FakeBackend struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []RecordedRequest
}

// NewFakeBackend starts a backend that is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{routes: make(map[string]http.HandlerFunc)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		RawQuery:    r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
		Header:      r.Header.Clone(),
		Body:        body,
	})
	h, ok := f.routes[routeKey(r.Method, r.URL.Path)]
	f.mu.Unlock()

	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
		return
	}
	h(w, r)
}

// Handle registers a handler for an exact method and path.
func (f *FakeBackend) Handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[routeKey(method, path)] = h
}

// JSON registers a route that always answers status with body encoded as JSON.
func (f *FakeBackend) JSON(method, path string, status int, body any) {
	f.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Requests returns a copy of every request received so far.
func (f *FakeBackend) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Count returns how many requests hit method and path.
func (f *FakeBackend) Count(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Client returns an api.Client pointed at the fake with logging discarded.
func (f *FakeBackend) Client(t *testing.T, opts ...api.Option) *api.Client {
	t.Helper()
	c, err := api.New(f.URL, append([]api.Option{api.WithLogger(DiscardLogger())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

// WriteJSON writes body as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// DiscardLogger returns a logger that writes nowhere.
func DiscardLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// Comparison builds a comparison response for the given models where winner
// scores highest. Each model gets three summaries and three evaluation details.
func Comparison(winner string, modelNames ...string) *models.ComparisonResponse {
	resp := &models.ComparisonResponse{
		OriginalText: SampleText,
		Winner:       winner,
		ModelsTested: len(modelNames),
	}
	for i, name := range modelNames {
		score := 10.0 + float64(i)
		detail := models.EvaluationDetail{Precision: 3, Completeness: 4, Clarity: 3, Comment: "adequate"}
		if name == winner {
			score = 14
			detail = models.EvaluationDetail{Precision: 5, Completeness: 4.5, Clarity: 4.5, Comment: "excellent"}
		}
		summaries := []string{
			fmt.Sprintf("%s summary one", name),
			fmt.Sprintf("%s summary two", name),
			fmt.Sprintf("%s summary three", name),
		}
		resp.Results = append(resp.Results, models.ModelResult{
			Model:         name,
			Summaries:     summaries,
			AvgLength:     float64(80 + i),
			ExecutionTime: 2.5 + float64(i),
			SuccessCount:  3,
		})
		resp.Evaluations = append(resp.Evaluations, models.Evaluation{
			Model:               name,
			SimilarityScores:    []float64{score, score, score},
			AverageScore:        score,
			BestScore:           score,
			WorstScore:          score,
			ConsistencyScore:    0.9,
			IndividualSummaries: summaries,
			EvaluationDetails:   []models.EvaluationDetail{detail, detail, detail},
		})
		resp.TotalExecutionTime += 2.5 + float64(i)
		resp.SuccessfulEvaluations += 3
		if name == winner {
			resp.BestSummary = summaries[0]
		}
	}
	return resp
}

// SampleText is long enough to pass the backend's minimum text length.
const SampleText = "Large language models are trained on broad corpora and can summarize, " +
	"translate and answer questions. Comparing them side by side on the same input " +
	"shows differences in precision, completeness and clarity that aggregate benchmarks hide."

func routeKey(method, path string) string {
	return method + " " + path
}
