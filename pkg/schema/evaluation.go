package schema

// Evaluation replays a workflow over multiple variable sets and scores the
// outputs against an ideal answer.
type Evaluation struct {
	EvaluationID string                 `json:"evaluation_id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	VariableSets map[string]VariableSet `json:"variable_sets"`
	Results      map[string][]RunRecord `json:"results,omitempty"` // keyed by workflow id
}

// VariableSet is one named input configuration for an evaluation.
type VariableSet struct {
	Variables   map[string]any `json:"variables"`
	IdealOutput string         `json:"ideal_output"`
	NumRuns     int            `json:"num_runs"`
}

// RunRecord is one (variable set, repetition) cell of an evaluation run.
// Indices are 0-based on the wire; rendering shows them 1-based.
type RunRecord struct {
	VariableSetIndex int        `json:"variable_set_index"`
	RunIndex         int        `json:"run_index"`
	Output           any        `json:"output"`
	Comparison       Comparison `json:"comparison"`
}

// Comparison scores a run's output against the variable set's ideal output.
type Comparison struct {
	MatchScore  float64 `json:"match_score"`
	Differences string  `json:"differences"`
}

// EvaluationSummary is one row of the evaluation list endpoint.
type EvaluationSummary struct {
	EvaluationID string `json:"evaluation_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

// EvaluationCreate is the payload of the evaluation-create endpoint.
type EvaluationCreate struct {
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	VariableSets map[string]VariableSet `json:"variable_sets"`
}
