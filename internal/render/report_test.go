package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendis/flowdeck/pkg/schema"
)

// identityMarkdown keeps assertions deterministic: the markdown stage is
// exercised separately.
func identityMarkdown(text string) string { return text }

func TestRenderCallLabelEscapesTitleAndModel(t *testing.T) {
	r := NewReportRenderer(identityMarkdown)
	out := r.Render(&schema.RunResult{
		Status: "success",
		Outputs: []schema.StepResult{{
			StepID:    "s1",
			StepTitle: "First Step",
			Calls: []schema.CallResult{{
				CallID:    "c1",
				Title:     "Greet <user>",
				ModelName: "gpt-4",
			}},
		}},
	})

	assert.Contains(t, out, "Greet &lt;user&gt; (gpt-4)")
	assert.Contains(t, out, "collapse-call-c1")
	assert.Contains(t, out, "collapse-step-s1")
}

func TestRenderEmptyStepShowsPlaceholders(t *testing.T) {
	r := NewReportRenderer(identityMarkdown)
	out := r.Render(&schema.RunResult{
		Outputs: []schema.StepResult{{StepID: "s1", StepTitle: "Empty"}},
	})

	assert.Contains(t, out, "No LLM calls in this step.")
	assert.Contains(t, out, "No function calls in this step.")
}

func TestRenderStructuredResponseIsIndentedJSON(t *testing.T) {
	r := NewReportRenderer(identityMarkdown)
	out := r.renderResponse(map[string]any{"a": 1})

	require.True(t, strings.HasPrefix(out, "<pre"))
	assert.Contains(t, out, "{\n  \"a\": 1\n}")
}

func TestRenderNilResponseIsEmptyTextLeaf(t *testing.T) {
	r := NewReportRenderer(identityMarkdown)
	assert.Equal(t, "", r.renderResponse(nil))
}

func TestRenderTextResponseIsEscapedThenMarkdown(t *testing.T) {
	calls := []string{}
	md := func(text string) string {
		calls = append(calls, text)
		return "MD:" + text
	}
	r := NewReportRenderer(md)

	out := r.renderResponse("a < b")
	assert.Equal(t, "MD:a &lt; b", out)
	require.Len(t, calls, 1)
	assert.Equal(t, "a &lt; b", calls[0])
}

func TestRenderFunctionResponseNeverGoesThroughMarkdown(t *testing.T) {
	md := func(text string) string { return "MD:" + text }
	r := NewReportRenderer(md)

	var b strings.Builder
	r.renderFunction(&b, "acc", schema.FunctionResult{
		CallID:   "f1",
		Title:    "Transform",
		Code:     "output_data = {}",
		Response: "**not markdown** <x>",
	})
	out := b.String()

	assert.Contains(t, out, "**not markdown** &lt;x&gt;")
	assert.NotContains(t, out, "MD:**not markdown**")
}

func TestRenderFunctionOutputVariableFallback(t *testing.T) {
	r := NewReportRenderer(identityMarkdown)

	var b strings.Builder
	r.renderFunction(&b, "acc", schema.FunctionResult{CallID: "f1", Title: "T"})

	assert.Contains(t, b.String(), "<strong>Output Variable:</strong> N/A")
}

func TestFormatConversation(t *testing.T) {
	var got string
	md := func(text string) string {
		got = text
		return text
	}
	r := NewReportRenderer(md)

	r.formatConversation([]schema.Message{
		{Role: "user", Content: "hi <there>"},
		{Role: "assistant", Content: "hello"},
	})

	assert.Equal(t, "**User:**\nhi &lt;there&gt;\n\n**Assistant:**\nhello\n\n", got)
}

func TestFormatConversationNilShowsPlaceholder(t *testing.T) {
	r := NewReportRenderer(identityMarkdown)
	out := r.formatConversation(nil)
	assert.Contains(t, out, "No conversation data available.")
}

func TestRenderEvaluationReportSection(t *testing.T) {
	r := NewReportRenderer(identityMarkdown)
	out := r.Render(&schema.RunResult{EvaluationReport: map[string]any{"score": 1}})

	assert.Contains(t, out, "<h4>Evaluation Report</h4>")
	assert.Contains(t, out, "\"score\": 1")
}

func TestRenderNilEvaluationReportDumpsNull(t *testing.T) {
	r := NewReportRenderer(identityMarkdown)
	out := r.Render(&schema.RunResult{})
	assert.Contains(t, out, "<pre class=\"bg-light p-3 border rounded\">null</pre>")
}
