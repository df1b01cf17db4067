package summarization

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/llmcompare/pkg/models"
	"github.com/grovetools/llmcompare/testutil"
)

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		score float64
		want  ScoreClass
	}{
		{15, ScoreHigh},
		{12, ScoreHigh},
		{11.9, ScoreMedium},
		{9, ScoreMedium},
		{8.99, ScoreLow},
		{0, ScoreLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyScore(tt.score), "score %v", tt.score)
	}
}

func TestBuildReport(t *testing.T) {
	resp := testutil.Comparison("claude-3", "gpt-4", "claude-3", "gemini-pro")
	r := BuildReport(resp.Results, resp.Evaluations, resp.Winner)

	assert.InDelta(t, 2.5+3.5+4.5, r.Stats.TotalTime, 1e-9)
	assert.Equal(t, 9, r.Stats.Successes)
	assert.Equal(t, 9, r.Stats.Attempts)
	assert.Equal(t, "claude-3", r.Stats.Winner)

	require.Len(t, r.Cards, 3)
	var winners []string
	for _, c := range r.Cards {
		if c.Winner {
			winners = append(winners, c.Result.Model)
		}
	}
	assert.Equal(t, []string{"claude-3"}, winners)

	assert.Equal(t, ScoreMedium, r.Cards[0].Class)
	assert.Equal(t, ScoreHigh, r.Cards[1].Class)
	assert.Equal(t, "claude-3 summary one", r.Cards[1].BestSummary)

	want := []SampleRow{
		{Index: 1, Summary: "gpt-4 summary one", Total: 10, HasDetail: true,
			Detail: models.EvaluationDetail{Precision: 3, Completeness: 4, Clarity: 3, Comment: "adequate"}},
		{Index: 2, Summary: "gpt-4 summary two", Total: 10, HasDetail: true,
			Detail: models.EvaluationDetail{Precision: 3, Completeness: 4, Clarity: 3, Comment: "adequate"}},
		{Index: 3, Summary: "gpt-4 summary three", Total: 10, HasDetail: true,
			Detail: models.EvaluationDetail{Precision: 3, Completeness: 4, Clarity: 3, Comment: "adequate"}},
	}
	if diff := cmp.Diff(want, r.Cards[0].Samples); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildReportMissingData(t *testing.T) {
	t.Run("no summaries", func(t *testing.T) {
		results := []models.ModelResult{{Model: "gpt-4"}, {Model: "claude-3", Summaries: []string{""}}}
		r := BuildReport(results, nil, "")

		for _, c := range r.Cards {
			assert.Equal(t, "No summary available", c.BestSummary)
			assert.Nil(t, c.Evaluation)
			assert.Equal(t, ScoreLow, c.Class)
			assert.False(t, c.Winner)
		}
		assert.Nil(t, r.Recommendation)
	})

	t.Run("total falls back to the detail sum", func(t *testing.T) {
		eval := models.Evaluation{
			Model:               "gpt-4",
			IndividualSummaries: []string{"a", "b"},
			SimilarityScores:    []float64{11},
			EvaluationDetails:   []models.EvaluationDetail{{Precision: 4, Completeness: 4, Clarity: 4}, {Precision: 2, Completeness: 3, Clarity: 4}},
		}
		rows := sampleRows(eval)
		require.Len(t, rows, 2)
		assert.Equal(t, 11.0, rows[0].Total)
		assert.Equal(t, 9.0, rows[1].Total)
	})

	t.Run("summaries without details", func(t *testing.T) {
		assert.Nil(t, sampleRows(models.Evaluation{IndividualSummaries: []string{"a"}}))
	})

	t.Run("winner without evaluation", func(t *testing.T) {
		results := []models.ModelResult{{Model: "gpt-4"}, {Model: "claude-3"}}
		r := BuildReport(results, nil, "gpt-4")
		assert.True(t, r.Cards[0].Winner)
		assert.Nil(t, r.Recommendation)
	})
}

func TestRecommendation(t *testing.T) {
	t.Run("winner is fastest", func(t *testing.T) {
		resp := testutil.Comparison("gpt-4", "gpt-4", "claude-3")
		rec := BuildReport(resp.Results, resp.Evaluations, resp.Winner).Recommendation

		require.NotNil(t, rec)
		assert.True(t, rec.WinnerFastest)
		assert.Empty(t, rec.Fastest)
		assert.Equal(t, 14.0, rec.WinnerScore)
		assert.Equal(t, []string{"Very precise", "Very complete", "Very clear"}, rec.Strengths)
	})

	t.Run("fastest differs", func(t *testing.T) {
		resp := testutil.Comparison("claude-3", "gpt-4", "claude-3")
		rec := BuildReport(resp.Results, resp.Evaluations, resp.Winner).Recommendation

		require.NotNil(t, rec)
		assert.False(t, rec.WinnerFastest)
		assert.Equal(t, "gpt-4", rec.Fastest)
		assert.Equal(t, 2.5, rec.FastestTime)
		assert.Equal(t, 10.0, rec.FastestScore)
		assert.Equal(t, 3.5, rec.WinnerTime)
	})

	t.Run("balanced winner", func(t *testing.T) {
		resp := testutil.Comparison("gpt-4", "gpt-4", "claude-3")
		for i := range resp.Evaluations[0].EvaluationDetails {
			resp.Evaluations[0].EvaluationDetails[i] = models.EvaluationDetail{Precision: 4, Completeness: 4, Clarity: 4}
		}
		rec := BuildReport(resp.Results, resp.Evaluations, resp.Winner).Recommendation
		require.NotNil(t, rec)
		assert.Empty(t, rec.Strengths)

		out := RenderReport(BuildReport(resp.Results, resp.Evaluations, resp.Winner), 100)
		assert.Contains(t, out, "Balanced performance")
		assert.Contains(t, out, "Fastest model")
	})
}

func TestRenderReport(t *testing.T) {
	resp := testutil.Comparison("claude-3", "gpt-4", "claude-3", "gemini-pro")
	out := RenderReport(BuildReport(resp.Results, resp.Evaluations, resp.Winner), 100)

	assert.Contains(t, out, "Best Overall: claude-3")
	assert.Contains(t, out, "Fastest: gpt-4")
	assert.Contains(t, out, "Detailed Evaluation")
	assert.Contains(t, out, "General Advice")
	assert.Contains(t, out, "3/3")
}

func TestCriterion(t *testing.T) {
	assert.Equal(t, "4.5/5", criterion(4.5, true))
	assert.Equal(t, "N/A/5", criterion(0, true))
	assert.Equal(t, "N/A/5", criterion(3, false))
}
