package mutation

import (
	"github.com/rendis/flowdeck/pkg/schema"
)

// EditKind enumerates the in-memory edits applicable to a step's call list.
type EditKind int

const (
	EditAdd EditKind = iota
	EditUpdate
	EditRemove
)

// EditOp is one edit to a step's LLM call list. Call carries the full call
// for add and update (update overwrites every field of the existing call,
// keeping its position); CallID selects the target for update and remove.
type EditOp struct {
	Kind   EditKind
	Call   schema.LLMCall
	CallID string
}

// ApplyEdit applies op to a copy of step and returns the edited step. It is
// a pure function: the input step is never modified, so the merge logic can
// be tested without network mocking. The returned step is the complete
// aggregate the server's edit-step endpoint expects.
func ApplyEdit(step schema.Step, op EditOp) (schema.Step, error) {
	calls := make([]schema.LLMCall, len(step.Calls))
	copy(calls, step.Calls)

	switch op.Kind {
	case EditAdd:
		calls = append(calls, op.Call)

	case EditUpdate:
		idx := -1
		for i := range calls {
			if calls[i].CallID == op.CallID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return schema.Step{}, schema.NewErrorf(schema.ErrCodeNotFound, "call %q not found in step %q", op.CallID, step.StepID)
		}
		updated := op.Call
		updated.CallID = op.CallID
		calls[idx] = updated

	case EditRemove:
		kept := calls[:0]
		removed := false
		for _, c := range calls {
			if c.CallID == op.CallID {
				removed = true
				continue
			}
			kept = append(kept, c)
		}
		if !removed {
			return schema.Step{}, schema.NewErrorf(schema.ErrCodeNotFound, "call %q not found in step %q", op.CallID, step.StepID)
		}
		calls = kept

	default:
		return schema.Step{}, schema.NewErrorf(schema.ErrCodeValidation, "unknown edit kind %d", op.Kind)
	}

	step.Calls = calls
	return step, nil
}

// stepEditPayload builds the whole-step submission for an edited step,
// applying the title fallback the server-side contract expects.
func stepEditPayload(step schema.Step) schema.StepEdit {
	title := step.Title
	if title == "" {
		title = UntitledStep
	}
	return schema.StepEdit{
		StepID:      step.StepID,
		Title:       title,
		Description: step.Description,
		Inputs:      step.Inputs,
		Calls:       step.Calls,
	}
}
