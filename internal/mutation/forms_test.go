package mutation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendis/flowdeck/pkg/schema"
)

func validCallForm() CallForm {
	return CallForm{
		Title:         "Greet",
		SystemPrompt:  "Say hello",
		VariablesJSON: `{"name": "world"}`,
		ModelName:     "gpt-4",
		Temperature:   "0.7",
		MaxTokens:     "1024",
		TopP:          "1.0",
		OutputType:    schema.OutputText,
	}
}

func TestParseCallFormHappyPath(t *testing.T) {
	call, err := ParseCallForm(validCallForm())
	require.NoError(t, err)

	assert.Equal(t, "Greet", call.Title)
	assert.Equal(t, 0.7, call.Temperature)
	assert.Equal(t, 1024, call.MaxTokens)
	assert.Equal(t, 1.0, call.TopP)
	assert.Equal(t, "world", call.Variables["name"])
	assert.Empty(t, call.CallID)
}

func TestParseCallFormTitleFallback(t *testing.T) {
	form := validCallForm()
	form.Title = "   "
	call, err := ParseCallForm(form)
	require.NoError(t, err)
	assert.Equal(t, UntitledCall, call.Title)
}

func TestParseCallFormRejectsBadNumbers(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*CallForm)
	}{
		{"temperature", func(f *CallForm) { f.Temperature = "warm" }},
		{"temperature NaN", func(f *CallForm) { f.Temperature = "NaN" }},
		{"top_p infinity", func(f *CallForm) { f.TopP = "+Inf" }},
		{"max_tokens", func(f *CallForm) { f.MaxTokens = "lots" }},
		{"max_tokens float", func(f *CallForm) { f.MaxTokens = "10.5" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			form := validCallForm()
			tc.mutate(&form)
			_, err := ParseCallForm(form)
			assertErrorCode(t, err, schema.ErrCodeValidation)
		})
	}
}

func TestParseCallFormRejectsBadVariablesJSON(t *testing.T) {
	form := validCallForm()
	form.VariablesJSON = "{not json"
	_, err := ParseCallForm(form)
	assertErrorCode(t, err, schema.ErrCodeValidation)
}

func TestParseCallFormEmptyVariablesBecomesEmptyObject(t *testing.T) {
	form := validCallForm()
	form.VariablesJSON = "  "
	call, err := ParseCallForm(form)
	require.NoError(t, err)
	assert.NotNil(t, call.Variables)
	assert.Empty(t, call.Variables)
}

func TestParseCallFormTextOutputCoercesRetryFields(t *testing.T) {
	form := validCallForm()
	form.OutputType = schema.OutputText
	form.OutputSchema = "StaleSchema"
	form.MaxRetries = "3"

	call, err := ParseCallForm(form)
	require.NoError(t, err)
	assert.Empty(t, call.OutputSchema)
	assert.Zero(t, call.MaxRetries)
}

func TestParseCallFormJSONOutput(t *testing.T) {
	form := validCallForm()
	form.OutputType = schema.OutputJSON
	form.OutputSchema = " Person "
	form.MaxRetries = "2"

	call, err := ParseCallForm(form)
	require.NoError(t, err)
	assert.Equal(t, "Person", call.OutputSchema)
	assert.Equal(t, 2, call.MaxRetries)
}

func TestParseCallFormJSONOutputRejectsNegativeRetries(t *testing.T) {
	form := validCallForm()
	form.OutputType = schema.OutputJSON
	form.MaxRetries = "-1"
	_, err := ParseCallForm(form)
	assertErrorCode(t, err, schema.ErrCodeValidation)
}

func TestParseCallFormUnknownOutputType(t *testing.T) {
	form := validCallForm()
	form.OutputType = "yaml"
	_, err := ParseCallForm(form)
	assertErrorCode(t, err, schema.ErrCodeValidation)
}

func TestParseCallFormConversationCleaning(t *testing.T) {
	form := validCallForm()
	form.Conversation = []schema.Message{
		{Role: schema.RoleUser, Content: "  hi  "},
		{Role: schema.RoleAssistant, Content: "   "},
		{Role: schema.RoleAssistant, Content: "hello"},
	}

	call, err := ParseCallForm(form)
	require.NoError(t, err)
	require.Len(t, call.Conversation, 2)
	assert.Equal(t, "hi", call.Conversation[0].Content)
	assert.Equal(t, "hello", call.Conversation[1].Content)
}

func TestParseCallFormRejectsUnknownRole(t *testing.T) {
	form := validCallForm()
	form.Conversation = []schema.Message{{Role: "system", Content: "x"}}
	_, err := ParseCallForm(form)
	assertErrorCode(t, err, schema.ErrCodeValidation)
}

func TestParseFunctionForm(t *testing.T) {
	payload, err := ParseFunctionForm(FunctionForm{
		Title:              "  Transform  ",
		Code:               "output_data = {}",
		InputVariablesJSON: `{"in": "x"}`,
		OutputVariable:     " result ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Transform", payload.Title)
	assert.Equal(t, "result", payload.OutputVariable)
	assert.Equal(t, "x", payload.InputVariables["in"])
}

func TestParseFunctionFormTitleFallbackAndBadJSON(t *testing.T) {
	payload, err := ParseFunctionForm(FunctionForm{Code: "pass"})
	require.NoError(t, err)
	assert.Equal(t, UntitledCall, payload.Title)

	_, err = ParseFunctionForm(FunctionForm{InputVariablesJSON: "["})
	assertErrorCode(t, err, schema.ErrCodeValidation)
}
