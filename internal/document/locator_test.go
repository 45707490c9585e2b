package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendis/flowdeck/pkg/schema"
)

func sampleDoc() *schema.WorkflowDocument {
	return &schema.WorkflowDocument{
		WorkflowID: "w1",
		Steps: []schema.Step{
			{
				StepID:    "s1",
				Calls:     []schema.LLMCall{{CallID: "c1", Title: "Call"}},
				Functions: []schema.FunctionCall{{CallID: "f1", Title: "Fn"}},
			},
			{StepID: "s2"},
		},
	}
}

func TestFindStep(t *testing.T) {
	doc := sampleDoc()

	step, err := FindStep(doc, "s2")
	require.NoError(t, err)
	assert.Equal(t, "s2", step.StepID)

	_, err = FindStep(doc, "missing")
	assertNotFound(t, err)
}

func TestFindLLMCall(t *testing.T) {
	doc := sampleDoc()
	step, _ := FindStep(doc, "s1")

	call, err := FindLLMCall(step, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Call", call.Title)

	// Function ids are not visible to the LLM lookup.
	_, err = FindLLMCall(step, "f1")
	assertNotFound(t, err)
}

func TestFindFunctionCall(t *testing.T) {
	doc := sampleDoc()
	step, _ := FindStep(doc, "s1")

	fn, err := FindFunctionCall(step, "f1")
	require.NoError(t, err)
	assert.Equal(t, "Fn", fn.Title)

	_, err = FindFunctionCall(step, "c1")
	assertNotFound(t, err)
}

func TestFindCallSearchesBothLists(t *testing.T) {
	doc := sampleDoc()
	step, _ := FindStep(doc, "s1")

	call, fn, err := FindCall(step, "c1")
	require.NoError(t, err)
	assert.NotNil(t, call)
	assert.Nil(t, fn)

	call, fn, err = FindCall(step, "f1")
	require.NoError(t, err)
	assert.Nil(t, call)
	assert.NotNil(t, fn)

	_, _, err = FindCall(step, "missing")
	assertNotFound(t, err)
}

func TestFindStepReturnsPointerIntoDocument(t *testing.T) {
	doc := sampleDoc()
	step, err := FindStep(doc, "s1")
	require.NoError(t, err)

	step.Title = "changed"
	assert.Equal(t, "changed", doc.Steps[0].Title)
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var fe *schema.FlowdeckError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, schema.ErrCodeNotFound, fe.Code)
}
