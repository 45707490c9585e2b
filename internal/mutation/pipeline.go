package mutation

import (
	"context"
	"log/slog"

	"github.com/rendis/flowdeck/internal/document"
	"github.com/rendis/flowdeck/internal/identity"
	"github.com/rendis/flowdeck/internal/transport"
	"github.com/rendis/flowdeck/pkg/schema"
)

// Poster is the slice of the transport client the pipeline needs.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
	PostExpect(ctx context.Context, path string, body any, want string, out any) error
}

// Refresher re-derives the affected view from the server's canonical state
// after a successful mutation. It replaces the original full page reload
// while preserving the same eventual-consistency guarantee.
type Refresher interface {
	Refresh(ctx context.Context, scope schema.Scope) error
}

// Confirm gates a destructive action. Returning false aborts the operation
// before any network call.
type Confirm func(prompt string) bool

// Pipeline implements the read-modify-write mutation discipline: fetch the
// whole document, locate the owning step, apply one edit in memory, submit
// the entire step, then refresh. There is no version check and no merge:
// two concurrent edits to the same step race at the server and the later
// submission wins. That is the server contract, not a bug to fix here.
type Pipeline struct {
	fetcher document.Fetcher
	poster  Poster
	refresh Refresher
	confirm Confirm
	log     *slog.Logger
}

// NewPipeline wires a mutation pipeline. refresh may be nil (no view to
// update); confirm may be nil (destructive actions proceed unprompted).
func NewPipeline(fetcher document.Fetcher, poster Poster, refresh Refresher, confirm Confirm, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{fetcher: fetcher, poster: poster, refresh: refresh, confirm: confirm, log: log}
}

// SaveLLMCall adds (callID == "") or edits one LLM call by submitting the
// owning step's complete post-edit aggregate. It returns the call's id.
func (p *Pipeline) SaveLLMCall(ctx context.Context, scope schema.Scope, stepID, callID string, form CallForm) (string, error) {
	call, err := ParseCallForm(form)
	if err != nil {
		return "", err
	}

	doc, err := p.fetcher.Fetch(ctx, scope)
	if err != nil {
		return "", err
	}
	step, err := document.FindStep(doc, stepID)
	if err != nil {
		return "", err
	}

	op := EditOp{Kind: EditUpdate, Call: call, CallID: callID}
	if callID == "" {
		call.CallID = identity.NewID()
		op = EditOp{Kind: EditAdd, Call: call}
	}
	edited, err := ApplyEdit(*step, op)
	if err != nil {
		return "", err
	}

	if err := p.submitStep(ctx, scope, edited); err != nil {
		return "", err
	}
	if callID == "" {
		return call.CallID, nil
	}
	return callID, nil
}

// RemoveLLMCall removes one LLM call, again by whole-step submission.
func (p *Pipeline) RemoveLLMCall(ctx context.Context, scope schema.Scope, stepID, callID string) error {
	if !p.confirmed("Remove this LLM call?") {
		return nil
	}
	doc, err := p.fetcher.Fetch(ctx, scope)
	if err != nil {
		return err
	}
	step, err := document.FindStep(doc, stepID)
	if err != nil {
		return err
	}
	edited, err := ApplyEdit(*step, EditOp{Kind: EditRemove, CallID: callID})
	if err != nil {
		return err
	}
	return p.submitStep(ctx, scope, edited)
}

func (p *Pipeline) submitStep(ctx context.Context, scope schema.Scope, step schema.Step) error {
	payload := stepEditPayload(step)
	if err := p.poster.PostExpect(ctx, transport.PathEditStep(scope), payload, schema.StatusStepEdited, nil); err != nil {
		return err
	}
	p.log.InfoContext(ctx, "step submitted", "step_id", step.StepID, "calls", len(step.Calls))
	return p.doRefresh(ctx, scope)
}

// SaveFunction adds (callID == "") or edits one function call via the
// dedicated function endpoints.
func (p *Pipeline) SaveFunction(ctx context.Context, scope schema.Scope, stepID, callID string, form FunctionForm) error {
	payload, err := ParseFunctionForm(form)
	if err != nil {
		return err
	}
	payload.StepID = stepID

	path, want := transport.PathAddFunction(scope), schema.StatusFunctionAdded
	if callID != "" {
		payload.CallID = callID
		path, want = transport.PathEditFunction(scope), schema.StatusFunctionEdited
	}
	if err := p.poster.PostExpect(ctx, path, payload, want, nil); err != nil {
		return err
	}
	return p.doRefresh(ctx, scope)
}

// RemoveFunction removes one function call.
func (p *Pipeline) RemoveFunction(ctx context.Context, scope schema.Scope, stepID, callID string) error {
	if !p.confirmed("Remove this function?") {
		return nil
	}
	payload := map[string]string{"step_id": stepID, "call_id": callID}
	if err := p.poster.PostExpect(ctx, transport.PathRemoveFunction(scope), payload, schema.StatusFunctionRemoved, nil); err != nil {
		return err
	}
	return p.doRefresh(ctx, scope)
}

// AddStep appends a new step with an empty call list.
func (p *Pipeline) AddStep(ctx context.Context, scope schema.Scope, title, description, inputs string) error {
	payload := schema.StepEdit{Title: title, Description: description, Inputs: inputs, Calls: []schema.LLMCall{}}
	if err := p.poster.PostExpect(ctx, transport.PathAddStep(scope), payload, schema.StatusStepAdded, nil); err != nil {
		return err
	}
	return p.doRefresh(ctx, scope)
}

// EditStep updates a step's own fields, carrying its current call list
// through unchanged.
func (p *Pipeline) EditStep(ctx context.Context, scope schema.Scope, stepID, title, description, inputs string) error {
	doc, err := p.fetcher.Fetch(ctx, scope)
	if err != nil {
		return err
	}
	step, err := document.FindStep(doc, stepID)
	if err != nil {
		return err
	}
	edited := *step
	edited.Title = title
	edited.Description = description
	edited.Inputs = inputs
	return p.submitStep(ctx, scope, edited)
}

// RemoveStep deletes a step.
func (p *Pipeline) RemoveStep(ctx context.Context, scope schema.Scope, stepID string) error {
	if !p.confirmed("Delete this step?") {
		return nil
	}
	payload := map[string]string{"step_id": stepID}
	if err := p.poster.PostExpect(ctx, transport.PathRemoveStep(scope), payload, schema.StatusStepRemoved, nil); err != nil {
		return err
	}
	return p.doRefresh(ctx, scope)
}

// ReorderSteps submits a complete new step order. The order is an explicit
// permutation, not a diff; the server is the sole authority for persisting it.
func (p *Pipeline) ReorderSteps(ctx context.Context, scope schema.Scope, newOrder []string) error {
	payload := map[string][]string{"new_order": newOrder}
	return p.poster.PostExpect(ctx, transport.PathReorderSteps(scope), payload, schema.StatusStepsReordered, nil)
}

// AddVariable adds a workflow variable.
func (p *Pipeline) AddVariable(ctx context.Context, scope schema.Scope, name, content string) error {
	if name == "" {
		return schema.NewError(schema.ErrCodeValidation, "variable name is required")
	}
	payload := map[string]string{"var_name": name, "var_content": content}
	if err := p.poster.PostExpect(ctx, transport.PathAddVariable(scope), payload, schema.StatusVariableAdded, nil); err != nil {
		return err
	}
	return p.doRefresh(ctx, scope)
}

// EditVariable replaces a workflow variable's content.
func (p *Pipeline) EditVariable(ctx context.Context, scope schema.Scope, name, content string) error {
	if content == "" {
		return schema.NewError(schema.ErrCodeValidation, "variable content cannot be empty")
	}
	payload := map[string]string{"var_name": name, "var_content": content}
	if err := p.poster.PostExpect(ctx, transport.PathEditVariable(scope), payload, schema.StatusVariableEdited, nil); err != nil {
		return err
	}
	return p.doRefresh(ctx, scope)
}

// RemoveVariable deletes a workflow variable.
func (p *Pipeline) RemoveVariable(ctx context.Context, scope schema.Scope, name string) error {
	if !p.confirmed("Delete variable " + name + "?") {
		return nil
	}
	payload := map[string]string{"var_name": name}
	if err := p.poster.PostExpect(ctx, transport.PathRemoveVariable(scope), payload, schema.StatusVariableRemoved, nil); err != nil {
		return err
	}
	return p.doRefresh(ctx, scope)
}

// RunWorkflow triggers one execution and returns the structured run result.
func (p *Pipeline) RunWorkflow(ctx context.Context, scope schema.Scope) (*schema.RunResult, error) {
	payload := map[string]string{"workflow_id": scope.Workflow}
	var result schema.RunResult
	if err := p.poster.PostExpect(ctx, transport.PathRunWorkflow(scope), payload, schema.StatusSuccess, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateWorkflow creates a workflow under a project and returns its id.
func (p *Pipeline) CreateWorkflow(ctx context.Context, project, name, description string) (string, error) {
	if name == "" || description == "" {
		return "", schema.NewError(schema.ErrCodeValidation, "workflow name and description are required")
	}
	payload := map[string]string{"workflow_name": name, "workflow_description": description}
	var out struct {
		WorkflowID string `json:"workflow_id"`
	}
	if err := p.poster.PostExpect(ctx, transport.PathAddWorkflow(project), payload, schema.StatusWorkflowAdded, &out); err != nil {
		return "", err
	}
	return out.WorkflowID, nil
}

// CopyWorkflow deep-clones a workflow server-side and returns the new id.
func (p *Pipeline) CopyWorkflow(ctx context.Context, project, workflowID string) (string, error) {
	if !p.confirmed("Copy this workflow?") {
		return "", nil
	}
	payload := map[string]string{"workflow_id": workflowID}
	var out struct {
		NewWorkflowID string `json:"new_workflow_id"`
	}
	if err := p.poster.PostExpect(ctx, transport.PathCopyWorkflow(project), payload, schema.StatusWorkflowCopied, &out); err != nil {
		return "", err
	}
	return out.NewWorkflowID, nil
}

// DeleteWorkflow deletes a workflow.
func (p *Pipeline) DeleteWorkflow(ctx context.Context, project, workflowID string) error {
	if !p.confirmed("Delete this workflow? This action cannot be undone.") {
		return nil
	}
	payload := map[string]string{"workflow_id": workflowID}
	return p.poster.PostExpect(ctx, transport.PathDeleteWorkflow(project), payload, schema.StatusWorkflowDeleted, nil)
}

func (p *Pipeline) confirmed(prompt string) bool {
	if p.confirm == nil {
		return true
	}
	if p.confirm(prompt) {
		return true
	}
	p.log.Debug("destructive action declined", "prompt", prompt)
	return false
}

func (p *Pipeline) doRefresh(ctx context.Context, scope schema.Scope) error {
	if p.refresh == nil {
		return nil
	}
	return p.refresh.Refresh(ctx, scope)
}
