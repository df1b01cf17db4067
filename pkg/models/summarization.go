package models

// Summarization request bounds enforced by the backend.
const (
	MinTextLength    = 100
	MaxTextLength    = 10000
	MinCompareModels = 2
	MaxCompareModels = 5
	MinMaxWords      = 20
	MaxMaxWords      = 500
	DefaultMaxWords  = 100

	// SamplesPerModel is how many summaries the backend generates per model.
	SamplesPerModel = 3
	// MaxSampleScore is the best total a single evaluated summary can get
	// (precision, completeness and clarity, each out of 5).
	MaxSampleScore = 15
	// MaxCriterionScore is the best score for one criterion.
	MaxCriterionScore = 5
)

// CompareRequest is the body of POST /summarization/compare.
type CompareRequest struct {
	Text      string    `json:"text"`
	Models    []string  `json:"models"`
	MaxWords  int       `json:"max_words"`
	LLMConfig LLMConfig `json:"llm_config"`
}

// ModelResult is one model's generation outcome.
type ModelResult struct {
	Model         string   `json:"model"`
	Summaries     []string `json:"summaries"`
	AvgLength     float64  `json:"avg_length"`
	ExecutionTime float64  `json:"execution_time"`
	SuccessCount  int      `json:"success_count"`
}

// EvaluationDetail scores one summary on three criteria, each out of 5.
type EvaluationDetail struct {
	Precision    float64 `json:"precision"`
	Completeness float64 `json:"completeness"`
	Clarity      float64 `json:"clarity"`
	Comment      string  `json:"comment,omitempty"`
}

// Total is the detail's summed score out of MaxSampleScore.
func (d EvaluationDetail) Total() float64 {
	return d.Precision + d.Completeness + d.Clarity
}

// Evaluation is the evaluator's verdict on one model.
type Evaluation struct {
	Model               string             `json:"model"`
	SimilarityScores    []float64          `json:"similarity_scores"`
	AverageScore        float64            `json:"average_score"`
	BestScore           float64            `json:"best_score"`
	WorstScore          float64            `json:"worst_score"`
	ConsistencyScore    float64            `json:"consistency_score"`
	IndividualSummaries []string           `json:"individual_summaries"`
	EvaluationDetails   []EvaluationDetail `json:"evaluation_details"`
}

// ComparisonResponse is returned by POST /summarization/compare.
type ComparisonResponse struct {
	OriginalText          string        `json:"original_text"`
	Results               []ModelResult `json:"results"`
	Evaluations           []Evaluation  `json:"evaluations"`
	Winner                string        `json:"winner"`
	BestSummary           string        `json:"best_summary"`
	TotalExecutionTime    float64       `json:"total_execution_time"`
	ModelsTested          int           `json:"models_tested"`
	SuccessfulEvaluations int           `json:"successful_evaluations"`
}

// EvaluationFor returns the evaluation for model, if present.
func (r *ComparisonResponse) EvaluationFor(model string) (Evaluation, bool) {
	for _, e := range r.Evaluations {
		if e.Model == model {
			return e, true
		}
	}
	return Evaluation{}, false
}

// SummarizationConfig is returned by GET /summarization/config.
type SummarizationConfig struct {
	SamplesPerModel int    `json:"samples_per_model"`
	DefaultMaxWords int    `json:"default_max_words"`
	EvaluatorModel  string `json:"evaluator_model"`
	PromptTemplate  string `json:"prompt_template"`
}

// SummaryTestRequest asks for a single quick summary from one model.
type SummaryTestRequest struct {
	Text        string  `json:"text"`
	Model       string  `json:"model"`
	MaxWords    int     `json:"max_words"`
	Temperature float64 `json:"temperature"`
}

// SummaryTestResponse is returned by POST /summarization/test.
type SummaryTestResponse struct {
	OriginalText string         `json:"original_text"`
	Model        string         `json:"model"`
	Summary      string         `json:"summary"`
	WordCount    int            `json:"word_count"`
	ConfigUsed   map[string]any `json:"config_used,omitempty"`
}
