package mutation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rendis/flowdeck/pkg/schema"
)

// Fallback titles applied instead of blocking submission.
const (
	UntitledStep = "Untitled Step"
	UntitledCall = "Untitled Call"
)

// CallForm is the editable state of one LLM call as staged by the side
// panel. Numeric fields stay strings until ParseCallForm: a field that fails
// to parse blocks submission instead of being sent as a degenerate value.
type CallForm struct {
	Title         string
	SystemPrompt  string
	VariableName  string
	VariablesJSON string
	ModelName     string
	Temperature   string
	MaxTokens     string
	TopP          string
	OutputType    string
	OutputSchema  string
	MaxRetries    string
	Conversation  []schema.Message
}

// FunctionForm is the editable state of one function call.
type FunctionForm struct {
	Title              string
	Code               string
	InputVariablesJSON string
	OutputVariable     string
}

// ParseCallForm validates a call form and produces the call to submit.
// The returned call has no id; the pipeline assigns or preserves one.
//
// Invariant: the retry budget and schema reference are defined only for json
// output. For text output they are coerced to 0/absent even if stale values
// are present in the form.
func ParseCallForm(form CallForm) (schema.LLMCall, error) {
	var call schema.LLMCall

	call.Title = strings.TrimSpace(form.Title)
	if call.Title == "" {
		call.Title = UntitledCall
	}
	call.SystemPrompt = strings.TrimSpace(form.SystemPrompt)
	call.VariableName = strings.TrimSpace(form.VariableName)
	call.ModelName = form.ModelName

	variables, err := parseJSONObject(form.VariablesJSON, "Variables")
	if err != nil {
		return schema.LLMCall{}, err
	}
	call.Variables = variables

	if call.Temperature, err = parseFloatField("temperature", form.Temperature); err != nil {
		return schema.LLMCall{}, err
	}
	if call.TopP, err = parseFloatField("top_p", form.TopP); err != nil {
		return schema.LLMCall{}, err
	}
	if call.MaxTokens, err = parseIntField("max_tokens", form.MaxTokens); err != nil {
		return schema.LLMCall{}, err
	}

	switch form.OutputType {
	case schema.OutputText:
		call.OutputType = schema.OutputText
	case schema.OutputJSON:
		call.OutputType = schema.OutputJSON
		call.OutputSchema = strings.TrimSpace(form.OutputSchema)
		retries := 0
		if raw := strings.TrimSpace(form.MaxRetries); raw != "" {
			if retries, err = parseIntField("max_retries", raw); err != nil {
				return schema.LLMCall{}, err
			}
			if retries < 0 {
				return schema.LLMCall{}, schema.NewError(schema.ErrCodeValidation, "max_retries must not be negative")
			}
		}
		call.MaxRetries = retries
	default:
		return schema.LLMCall{}, schema.NewErrorf(schema.ErrCodeValidation, "unknown output type %q", form.OutputType)
	}

	call.Conversation, err = cleanConversation(form.Conversation)
	if err != nil {
		return schema.LLMCall{}, err
	}
	return call, nil
}

// ParseFunctionForm validates a function form and produces the edit payload
// fields (step and call ids are filled in by the pipeline).
func ParseFunctionForm(form FunctionForm) (schema.FunctionEdit, error) {
	inputVars, err := parseJSONObject(form.InputVariablesJSON, "Input Variables")
	if err != nil {
		return schema.FunctionEdit{}, err
	}
	title := strings.TrimSpace(form.Title)
	if title == "" {
		title = UntitledCall
	}
	return schema.FunctionEdit{
		Title:          title,
		Code:           form.Code,
		InputVariables: inputVars,
		OutputVariable: strings.TrimSpace(form.OutputVariable),
	}, nil
}

// cleanConversation drops turns whose trimmed content is empty and rejects
// roles outside {user, assistant}.
func cleanConversation(turns []schema.Message) ([]schema.Message, error) {
	cleaned := make([]schema.Message, 0, len(turns))
	for _, turn := range turns {
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		if turn.Role != schema.RoleUser && turn.Role != schema.RoleAssistant {
			return nil, schema.NewErrorf(schema.ErrCodeValidation, "invalid conversation role %q", turn.Role)
		}
		cleaned = append(cleaned, schema.Message{Role: turn.Role, Content: content})
	}
	return cleaned, nil
}

func parseJSONObject(raw, fieldLabel string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeValidation, "invalid JSON in %s field", fieldLabel).WithCause(err)
	}
	return obj, nil
}

func parseFloatField(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, schema.NewErrorf(schema.ErrCodeValidation, "invalid value for %s: %q", name, raw)
	}
	return v, nil
}

func parseIntField(name, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, schema.NewErrorf(schema.ErrCodeValidation, "invalid value for %s: %q", name, raw)
	}
	return v, nil
}
