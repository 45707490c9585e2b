package document

import (
	"github.com/rendis/flowdeck/pkg/schema"
)

// Entity lookup over a fetched workflow document. Ids are unique within
// their immediate collection but nothing else is assumed: lookups scan in
// order and return a NOT_FOUND error when no node matches, at which point
// the caller aborts with no partial mutation.

// FindStep returns the step with the given id.
func FindStep(doc *schema.WorkflowDocument, stepID string) (*schema.Step, error) {
	for i := range doc.Steps {
		if doc.Steps[i].StepID == stepID {
			return &doc.Steps[i], nil
		}
	}
	return nil, schema.NewErrorf(schema.ErrCodeNotFound, "step %q not found", stepID)
}

// FindLLMCall returns the LLM call with the given id inside a step.
func FindLLMCall(step *schema.Step, callID string) (*schema.LLMCall, error) {
	for i := range step.Calls {
		if step.Calls[i].CallID == callID {
			return &step.Calls[i], nil
		}
	}
	return nil, schema.NewErrorf(schema.ErrCodeNotFound, "call %q not found in step %q", callID, step.StepID)
}

// FindFunctionCall returns the function call with the given id inside a step.
func FindFunctionCall(step *schema.Step, callID string) (*schema.FunctionCall, error) {
	for i := range step.Functions {
		if step.Functions[i].CallID == callID {
			return &step.Functions[i], nil
		}
	}
	return nil, schema.NewErrorf(schema.ErrCodeNotFound, "function %q not found in step %q", callID, step.StepID)
}

// FindCall resolves a call id inside a step, searching the LLM call list
// first and the function call list second. Exactly one of the returns is
// non-nil on success.
func FindCall(step *schema.Step, callID string) (*schema.LLMCall, *schema.FunctionCall, error) {
	if call, err := FindLLMCall(step, callID); err == nil {
		return call, nil, nil
	}
	fn, err := FindFunctionCall(step, callID)
	if err != nil {
		return nil, nil, schema.NewErrorf(schema.ErrCodeNotFound, "call %q not found in step %q", callID, step.StepID)
	}
	return nil, fn, nil
}
