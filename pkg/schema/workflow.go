package schema

// WorkflowDocument is the full workflow tree as returned by the server's
// document endpoint. The client never caches it across user actions: every
// mutation re-fetches, edits in memory, and submits.
type WorkflowDocument struct {
	WorkflowID string `json:"workflow_id,omitempty"`
	Name       string `json:"name"`
	Steps      []Step `json:"steps"`
}

// Step is one ordered unit of work inside a workflow.
type Step struct {
	StepID      string         `json:"step_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Inputs      string         `json:"inputs"`
	Calls       []LLMCall      `json:"calls"`
	Functions   []FunctionCall `json:"functions,omitempty"`
}

// Output kinds for an LLM call.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// LLMCall is a configured request to a language model.
// OutputSchema and MaxRetries are only meaningful when OutputType is "json";
// for "text" output they must not be submitted.
type LLMCall struct {
	CallID       string         `json:"call_id"`
	Title        string         `json:"title"`
	SystemPrompt string         `json:"system_prompt"`
	VariableName string         `json:"variable_name"`
	Variables    map[string]any `json:"variables"`
	ModelName    string         `json:"model_name"`
	Temperature  float64        `json:"temperature"`
	MaxTokens    int            `json:"max_tokens"`
	TopP         float64        `json:"top_p"`
	OutputType   string         `json:"output_type"`
	Conversation []Message      `json:"conversation"`
	OutputSchema string         `json:"output_schema,omitempty"`
	MaxRetries   int            `json:"max_retries,omitempty"`
}

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of an LLM call's conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FunctionCall is a snippet of externally executed code with declared
// input/output variable bindings.
type FunctionCall struct {
	CallID         string         `json:"call_id"`
	Title          string         `json:"title"`
	Code           string         `json:"code"`
	InputVariables map[string]any `json:"input_variables"`
	OutputVariable string         `json:"output_variable"`
}

// StepEdit is the payload of the step-level edit endpoint. It carries the
// complete step aggregate: the server is not aware of "add one call" as a
// distinct operation, so the client computes the full post-edit call list
// before submitting. Functions are edited through their own endpoints.
type StepEdit struct {
	StepID      string    `json:"step_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Inputs      string    `json:"inputs"`
	Calls       []LLMCall `json:"calls"`
}

// FunctionEdit is the payload of the add/edit/remove-function endpoints.
// CallID is set only for edit and remove.
type FunctionEdit struct {
	StepID         string         `json:"step_id"`
	CallID         string         `json:"call_id,omitempty"`
	Title          string         `json:"title"`
	Code           string         `json:"code"`
	InputVariables map[string]any `json:"input_variables"`
	OutputVariable string         `json:"output_variable"`
}
