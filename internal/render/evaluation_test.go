package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rendis/flowdeck/pkg/schema"
)

func TestRenderEvaluationResultsOrdinalsAreOneBased(t *testing.T) {
	ev := &schema.Evaluation{
		Results: map[string][]schema.RunRecord{
			"wf-1": {
				{VariableSetIndex: 0, RunIndex: 0, Comparison: schema.Comparison{MatchScore: 0.85, Differences: "minor"}},
				{VariableSetIndex: 1, RunIndex: 2, Comparison: schema.Comparison{MatchScore: 1}},
			},
		},
	}

	out := RenderEvaluationResults(ev, map[string]string{"wf-1": "Summarizer"})

	assert.Contains(t, out, "Workflow: Summarizer")
	assert.Contains(t, out, "<td>1</td>\n<td>1</td>")
	assert.Contains(t, out, "<td>2</td>\n<td>3</td>")
	assert.Contains(t, out, "<td>0.85</td>")
	assert.Contains(t, out, "<td>1</td>")
}

func TestRenderEvaluationResultsNameFallsBackToID(t *testing.T) {
	ev := &schema.Evaluation{
		Results: map[string][]schema.RunRecord{"wf-9": {}},
	}
	out := RenderEvaluationResults(ev, nil)
	assert.Contains(t, out, "Workflow: wf-9")
}

func TestRenderEvaluationResultsOutputCell(t *testing.T) {
	assert.Equal(t, "", renderRecordOutput(nil))
	assert.Equal(t, "a &lt; b", renderRecordOutput("a < b"))
	assert.Contains(t, renderRecordOutput(map[string]any{"k": "v"}), "\"k\": \"v\"")
}

func TestRenderEvaluationResultsEscapesDifferences(t *testing.T) {
	ev := &schema.Evaluation{
		Results: map[string][]schema.RunRecord{
			"wf-1": {{Comparison: schema.Comparison{Differences: "<script>"}}},
		},
	}
	out := RenderEvaluationResults(ev, nil)
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
}
