package editor

import (
	"context"

	"github.com/rendis/flowdeck/internal/document"
	"github.com/rendis/flowdeck/internal/mutation"
	"github.com/rendis/flowdeck/pkg/schema"
)

// Mode is the panel lifecycle state.
type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeEdit
)

// CallPanel is the single side panel for LLM-call editing. At most one
// entity is staged at a time; opening for another entity replaces the draft
// wholesale. The draft lives here, not in any rendered view, so concurrent
// refreshes cannot clobber in-progress edits.
type CallPanel struct {
	pipeline *mutation.Pipeline
	fetcher  document.Fetcher

	mode   Mode
	scope  schema.Scope
	stepID string
	callID string
	draft  mutation.CallForm
}

// NewCallPanel wires the panel over a mutation pipeline and a fetcher used
// to snapshot existing calls on open.
func NewCallPanel(pipeline *mutation.Pipeline, fetcher document.Fetcher) *CallPanel {
	return &CallPanel{pipeline: pipeline, fetcher: fetcher}
}

// Mode reports the current lifecycle state.
func (p *CallPanel) Mode() Mode { return p.mode }

// Draft exposes the staged form for field binding. Valid only while open.
func (p *CallPanel) Draft() *mutation.CallForm { return &p.draft }

// OpenNew stages a fresh draft with default field values.
func (p *CallPanel) OpenNew(scope schema.Scope, stepID string) {
	p.mode = ModeCreate
	p.scope = scope
	p.stepID = stepID
	p.callID = ""
	p.draft = NewCallDraft()
}

// OpenEdit fetches the current document and stages a snapshot of the call.
func (p *CallPanel) OpenEdit(ctx context.Context, scope schema.Scope, stepID, callID string) error {
	doc, err := p.fetcher.Fetch(ctx, scope)
	if err != nil {
		return err
	}
	step, err := document.FindStep(doc, stepID)
	if err != nil {
		return err
	}
	call, err := document.FindLLMCall(step, callID)
	if err != nil {
		return err
	}
	p.mode = ModeEdit
	p.scope = scope
	p.stepID = stepID
	p.callID = callID
	p.draft = CallDraftFrom(*call)
	return nil
}

// Save submits the draft through the pipeline. On success the panel closes
// and the saved call's id is returned; on failure the draft stays staged so
// the user can correct it.
func (p *CallPanel) Save(ctx context.Context) (string, error) {
	if p.mode == ModeClosed {
		return "", schema.NewError(schema.ErrCodeApplication, "no call is being edited")
	}
	id, err := p.pipeline.SaveLLMCall(ctx, p.scope, p.stepID, p.callID, p.draft)
	if err != nil {
		return "", err
	}
	p.close()
	return id, nil
}

// Remove deletes the staged call and closes the panel on success. Only
// meaningful in edit mode.
func (p *CallPanel) Remove(ctx context.Context) error {
	if p.mode != ModeEdit {
		return schema.NewError(schema.ErrCodeApplication, "no existing call is being edited")
	}
	if err := p.pipeline.RemoveLLMCall(ctx, p.scope, p.stepID, p.callID); err != nil {
		return err
	}
	p.close()
	return nil
}

// Cancel discards the draft.
func (p *CallPanel) Cancel() { p.close() }

func (p *CallPanel) close() {
	p.mode = ModeClosed
	p.stepID = ""
	p.callID = ""
	p.draft = mutation.CallForm{}
}

// CodeWidget is the embedded code editor backing the function panel. It is
// destroyed and re-initialized on every open so stale buffers from a
// previous entity can never leak into the draft.
type CodeWidget interface {
	Init(initial string)
	Value() string
	Destroy()
}

// FunctionPanel is the side panel for function-call editing. The code field
// lives in the widget while the panel is open and is pulled back into the
// draft at save time.
type FunctionPanel struct {
	pipeline *mutation.Pipeline
	fetcher  document.Fetcher
	widget   CodeWidget

	mode   Mode
	scope  schema.Scope
	stepID string
	callID string
	draft  mutation.FunctionForm
}

// NewFunctionPanel wires the panel. widget may be nil, in which case the
// draft's code field is authoritative.
func NewFunctionPanel(pipeline *mutation.Pipeline, fetcher document.Fetcher, widget CodeWidget) *FunctionPanel {
	return &FunctionPanel{pipeline: pipeline, fetcher: fetcher, widget: widget}
}

// Mode reports the current lifecycle state.
func (p *FunctionPanel) Mode() Mode { return p.mode }

// Draft exposes the staged form for field binding. Valid only while open.
func (p *FunctionPanel) Draft() *mutation.FunctionForm { return &p.draft }

// OpenNew stages a fresh function draft and seeds the code widget.
func (p *FunctionPanel) OpenNew(scope schema.Scope, stepID string) {
	p.mode = ModeCreate
	p.scope = scope
	p.stepID = stepID
	p.callID = ""
	p.draft = NewFunctionDraft()
	p.resetWidget(p.draft.Code)
}

// OpenEdit fetches the current document and stages a snapshot of the
// function call.
func (p *FunctionPanel) OpenEdit(ctx context.Context, scope schema.Scope, stepID, callID string) error {
	doc, err := p.fetcher.Fetch(ctx, scope)
	if err != nil {
		return err
	}
	step, err := document.FindStep(doc, stepID)
	if err != nil {
		return err
	}
	fn, err := document.FindFunctionCall(step, callID)
	if err != nil {
		return err
	}
	p.mode = ModeEdit
	p.scope = scope
	p.stepID = stepID
	p.callID = callID
	p.draft = FunctionDraftFrom(*fn)
	p.resetWidget(p.draft.Code)
	return nil
}

// Save pulls the widget's buffer into the draft and submits it. On success
// the panel closes; on failure the draft stays staged.
func (p *FunctionPanel) Save(ctx context.Context) error {
	if p.mode == ModeClosed {
		return schema.NewError(schema.ErrCodeApplication, "no function is being edited")
	}
	if p.widget != nil {
		p.draft.Code = p.widget.Value()
	}
	if err := p.pipeline.SaveFunction(ctx, p.scope, p.stepID, p.callID, p.draft); err != nil {
		return err
	}
	p.close()
	return nil
}

// Remove deletes the staged function and closes the panel on success.
func (p *FunctionPanel) Remove(ctx context.Context) error {
	if p.mode != ModeEdit {
		return schema.NewError(schema.ErrCodeApplication, "no existing function is being edited")
	}
	if err := p.pipeline.RemoveFunction(ctx, p.scope, p.stepID, p.callID); err != nil {
		return err
	}
	p.close()
	return nil
}

// Cancel discards the draft.
func (p *FunctionPanel) Cancel() { p.close() }

func (p *FunctionPanel) close() {
	p.mode = ModeClosed
	p.stepID = ""
	p.callID = ""
	p.draft = mutation.FunctionForm{}
	if p.widget != nil {
		p.widget.Destroy()
	}
}

func (p *FunctionPanel) resetWidget(code string) {
	if p.widget == nil {
		return
	}
	p.widget.Destroy()
	p.widget.Init(code)
}
