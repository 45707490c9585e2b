package editor

import (
	"encoding/json"
	"strconv"

	"github.com/rendis/flowdeck/internal/mutation"
	"github.com/rendis/flowdeck/pkg/schema"
)

// Defaults applied when opening the panel for a brand-new LLM call.
const (
	defaultModelName   = "gpt-4"
	defaultTemperature = "1"
	defaultMaxTokens   = "1024"
	defaultTopP        = "1.0"
	defaultMaxRetries  = "0"
)

// defaultFunctionCode seeds the code widget for a new function call.
const defaultFunctionCode = "# output_data = {...}"

// NewCallDraft returns the form state for a new LLM call.
func NewCallDraft() mutation.CallForm {
	return mutation.CallForm{
		VariablesJSON: "{}",
		ModelName:     defaultModelName,
		Temperature:   defaultTemperature,
		MaxTokens:     defaultMaxTokens,
		TopP:          defaultTopP,
		OutputType:    schema.OutputText,
		MaxRetries:    defaultMaxRetries,
	}
}

// CallDraftFrom snapshots an existing call into editable form state. The
// snapshot is value-typed; editing it never touches the fetched document.
func CallDraftFrom(call schema.LLMCall) mutation.CallForm {
	form := mutation.CallForm{
		Title:         call.Title,
		SystemPrompt:  call.SystemPrompt,
		VariableName:  call.VariableName,
		VariablesJSON: dumpJSONObject(call.Variables),
		ModelName:     call.ModelName,
		Temperature:   strconv.FormatFloat(call.Temperature, 'f', -1, 64),
		MaxTokens:     strconv.Itoa(call.MaxTokens),
		TopP:          strconv.FormatFloat(call.TopP, 'f', -1, 64),
		OutputType:    call.OutputType,
		OutputSchema:  call.OutputSchema,
		MaxRetries:    strconv.Itoa(call.MaxRetries),
		Conversation:  make([]schema.Message, len(call.Conversation)),
	}
	copy(form.Conversation, call.Conversation)
	return form
}

// NewFunctionDraft returns the form state for a new function call.
func NewFunctionDraft() mutation.FunctionForm {
	return mutation.FunctionForm{
		Code:               defaultFunctionCode,
		InputVariablesJSON: "{}",
	}
}

// FunctionDraftFrom snapshots an existing function call into form state.
func FunctionDraftFrom(fn schema.FunctionCall) mutation.FunctionForm {
	return mutation.FunctionForm{
		Title:              fn.Title,
		Code:               fn.Code,
		InputVariablesJSON: dumpJSONObject(fn.InputVariables),
		OutputVariable:     fn.OutputVariable,
	}
}

func dumpJSONObject(obj map[string]any) string {
	if len(obj) == 0 {
		return "{}"
	}
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
