package summarization

import (
	"github.com/grovetools/llmcompare/pkg/models"
)

// ScoreClass buckets an average score for colouring.
type ScoreClass string

const (
	ScoreHigh   ScoreClass = "high"
	ScoreMedium ScoreClass = "medium"
	ScoreLow    ScoreClass = "low"
)

// strongAverage is the per-criterion average that counts as a strength.
const strongAverage = 4.5

// ClassifyScore buckets a score out of models.MaxSampleScore.
func ClassifyScore(score float64) ScoreClass {
	switch {
	case score >= 12:
		return ScoreHigh
	case score >= 9:
		return ScoreMedium
	default:
		return ScoreLow
	}
}

// Stats summarizes a whole comparison.
type Stats struct {
	TotalTime float64
	Successes int
	Attempts  int
	Winner    string
}

// SampleRow is one evaluated summary of a model.
type SampleRow struct {
	Index   int
	Summary string
	// Total is the backend's similarity score for the sample, out of 15.
	Total     float64
	Detail    models.EvaluationDetail
	HasDetail bool
}

// Card is the rendered view of one model's result.
type Card struct {
	Result      models.ModelResult
	Evaluation  *models.Evaluation
	Winner      bool
	Class       ScoreClass
	BestSummary string
	Samples     []SampleRow
}

// Score returns the card's average score, or 0 without an evaluation.
func (c Card) Score() float64 {
	if c.Evaluation == nil {
		return 0
	}
	return c.Evaluation.AverageScore
}

// Recommendation highlights the winner and, when different, the fastest model.
type Recommendation struct {
	Winner        string
	WinnerScore   float64
	WinnerTime    float64
	WinnerFastest bool
	Strengths     []string

	Fastest      string
	FastestTime  float64
	FastestScore float64
}

// Report is everything the results view shows for one comparison.
type Report struct {
	Stats          Stats
	Cards          []Card
	Recommendation *Recommendation
}

// BuildReport derives the presentation of a comparison. Scores are taken as
// given; nothing is re-scored.
func BuildReport(results []models.ModelResult, evaluations []models.Evaluation, winner string) *Report {
	resp := &models.ComparisonResponse{Results: results, Evaluations: evaluations, Winner: winner}
	r := &Report{
		Stats: Stats{
			Attempts: len(results) * models.SamplesPerModel,
			Winner:   winner,
		},
	}

	for _, res := range results {
		r.Stats.TotalTime += res.ExecutionTime
		r.Stats.Successes += res.SuccessCount

		card := Card{
			Result:      res,
			Winner:      winner != "" && res.Model == winner,
			BestSummary: "No summary available",
		}
		if len(res.Summaries) > 0 && res.Summaries[0] != "" {
			card.BestSummary = res.Summaries[0]
		}
		if eval, ok := resp.EvaluationFor(res.Model); ok {
			card.Evaluation = &eval
			card.Samples = sampleRows(eval)
		}
		card.Class = ClassifyScore(card.Score())
		r.Cards = append(r.Cards, card)
	}

	r.Recommendation = recommend(resp)
	return r
}

func sampleRows(eval models.Evaluation) []SampleRow {
	if len(eval.EvaluationDetails) == 0 {
		return nil
	}
	rows := make([]SampleRow, 0, len(eval.IndividualSummaries))
	for i, summary := range eval.IndividualSummaries {
		row := SampleRow{Index: i + 1, Summary: summary}
		if i < len(eval.EvaluationDetails) {
			row.Detail = eval.EvaluationDetails[i]
			row.HasDetail = true
		}
		if i < len(eval.SimilarityScores) {
			row.Total = eval.SimilarityScores[i]
		} else if row.HasDetail {
			row.Total = row.Detail.Total()
		}
		rows = append(rows, row)
	}
	return rows
}

// recommend returns nil when the winner has no result or evaluation.
func recommend(resp *models.ComparisonResponse) *Recommendation {
	winnerEval, ok := resp.EvaluationFor(resp.Winner)
	if !ok {
		return nil
	}
	var winnerResult *models.ModelResult
	fastest := -1
	for i := range resp.Results {
		if resp.Results[i].Model == resp.Winner {
			winnerResult = &resp.Results[i]
		}
		if fastest < 0 || resp.Results[i].ExecutionTime < resp.Results[fastest].ExecutionTime {
			fastest = i
		}
	}
	if winnerResult == nil {
		return nil
	}

	rec := &Recommendation{
		Winner:      resp.Winner,
		WinnerScore: winnerEval.AverageScore,
		WinnerTime:  winnerResult.ExecutionTime,
		Strengths:   strengths(winnerEval.EvaluationDetails),
	}
	fast := resp.Results[fastest]
	if fast.Model == resp.Winner {
		rec.WinnerFastest = true
		return rec
	}
	rec.Fastest = fast.Model
	rec.FastestTime = fast.ExecutionTime
	if eval, ok := resp.EvaluationFor(fast.Model); ok {
		rec.FastestScore = eval.AverageScore
	}
	return rec
}

func strengths(details []models.EvaluationDetail) []string {
	if len(details) == 0 {
		return nil
	}
	var precision, completeness, clarity float64
	for _, d := range details {
		precision += d.Precision
		completeness += d.Completeness
		clarity += d.Clarity
	}
	n := float64(len(details))

	var out []string
	if precision/n >= strongAverage {
		out = append(out, "Very precise")
	}
	if completeness/n >= strongAverage {
		out = append(out, "Very complete")
	}
	if clarity/n >= strongAverage {
		out = append(out, "Very clear")
	}
	return out
}
