package mutation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendis/flowdeck/pkg/schema"
)

func threeCallStep() schema.Step {
	return schema.Step{
		StepID: "s1",
		Title:  "Step",
		Calls: []schema.LLMCall{
			{CallID: "c1", Title: "First", ModelName: "gpt-4"},
			{CallID: "c2", Title: "Second", ModelName: "gpt-4"},
			{CallID: "c3", Title: "Third", ModelName: "gpt-4"},
		},
	}
}

func TestApplyEditAddAppends(t *testing.T) {
	step := threeCallStep()
	edited, err := ApplyEdit(step, EditOp{Kind: EditAdd, Call: schema.LLMCall{CallID: "c4", Title: "Fourth"}})
	require.NoError(t, err)

	require.Len(t, edited.Calls, 4)
	assert.Equal(t, "c4", edited.Calls[3].CallID)
	assert.Equal(t, []string{"c1", "c2", "c3"}, callIDs(edited.Calls[:3]))
	// Input untouched.
	assert.Len(t, step.Calls, 3)
}

func TestApplyEditUpdatePreservesPositionAndID(t *testing.T) {
	step := threeCallStep()
	edited, err := ApplyEdit(step, EditOp{
		Kind:   EditUpdate,
		CallID: "c2",
		Call:   schema.LLMCall{Title: "Renamed", ModelName: "gpt-4o", Temperature: 0.5},
	})
	require.NoError(t, err)

	require.Len(t, edited.Calls, 3)
	assert.Equal(t, "c2", edited.Calls[1].CallID)
	assert.Equal(t, "Renamed", edited.Calls[1].Title)
	assert.Equal(t, "gpt-4o", edited.Calls[1].ModelName)
	// Siblings untouched.
	assert.Equal(t, "First", edited.Calls[0].Title)
	assert.Equal(t, "Third", edited.Calls[2].Title)
	// Input untouched.
	assert.Equal(t, "Second", step.Calls[1].Title)
}

func TestApplyEditRemove(t *testing.T) {
	step := threeCallStep()
	edited, err := ApplyEdit(step, EditOp{Kind: EditRemove, CallID: "c2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"c1", "c3"}, callIDs(edited.Calls))
}

func TestApplyEditMissingTargetIsNotFound(t *testing.T) {
	step := threeCallStep()

	_, err := ApplyEdit(step, EditOp{Kind: EditUpdate, CallID: "nope"})
	assertErrorCode(t, err, schema.ErrCodeNotFound)

	_, err = ApplyEdit(step, EditOp{Kind: EditRemove, CallID: "nope"})
	assertErrorCode(t, err, schema.ErrCodeNotFound)
}

func callIDs(calls []schema.LLMCall) []string {
	ids := make([]string, len(calls))
	for i, c := range calls {
		ids[i] = c.CallID
	}
	return ids
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var fe *schema.FlowdeckError
	require.True(t, errors.As(err, &fe), "expected FlowdeckError, got %T", err)
	assert.Equal(t, code, fe.Code)
}
