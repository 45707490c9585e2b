package schema

// RunResult is the transient result of one workflow execution. The
// evaluation report blob is opaque to this subsystem and rendered verbatim.
type RunResult struct {
	Status           string       `json:"status"`
	Outputs          []StepResult `json:"outputs"`
	EvaluationReport any          `json:"evaluation_report,omitempty"`
}

// StepResult carries the per-step outputs of a run.
type StepResult struct {
	StepID    string           `json:"step_id"`
	StepTitle string           `json:"step_title"`
	Calls     []CallResult     `json:"calls"`
	Functions []FunctionResult `json:"functions"`
}

// CallResult is the executed snapshot of one LLM call. Response is either a
// plain string or an already-structured value decoded from JSON.
type CallResult struct {
	CallID       string    `json:"call_id"`
	Title        string    `json:"title"`
	ModelName    string    `json:"model_name"`
	SystemPrompt string    `json:"system_prompt"`
	Conversation []Message `json:"conversation"`
	Response     any       `json:"response"`
}

// FunctionResult is the executed snapshot of one function call.
type FunctionResult struct {
	CallID         string         `json:"call_id"`
	Title          string         `json:"title"`
	Code           string         `json:"code"`
	InputVariables map[string]any `json:"input_variables"`
	OutputVariable string         `json:"output_variable"`
	Response       any            `json:"response"`
}
