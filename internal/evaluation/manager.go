package evaluation

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rendis/flowdeck/internal/document"
	"github.com/rendis/flowdeck/internal/identity"
	"github.com/rendis/flowdeck/internal/render"
	"github.com/rendis/flowdeck/internal/transport"
	"github.com/rendis/flowdeck/pkg/schema"
)

// Client is the slice of the transport client the manager needs.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	PostExpect(ctx context.Context, path string, body any, want string, out any) error
}

// Confirm gates a destructive or long-running action.
type Confirm func(prompt string) bool

// VariableSetForm is one manually entered variable set. NumRuns stays a
// string until validation so unparsable input blocks submission.
type VariableSetForm struct {
	VariablesJSON string
	IdealOutput   string
	NumRuns       string
}

// CreateForm is the staged state of the evaluation-create dialog. A bulk
// upload, when present, takes precedence over manual entries.
type CreateForm struct {
	Name        string
	Description string
	BulkJSON    string
	Manual      []VariableSetForm
}

// Manager performs evaluation operations: create, list, run, delete, and
// results rendering. All validation happens before any network call; the
// first invalid variable set aborts the whole submission.
type Manager struct {
	client  Client
	fetcher document.Fetcher
	confirm Confirm
	log     *slog.Logger
}

// NewManager wires an evaluation manager. confirm may be nil.
func NewManager(client Client, fetcher document.Fetcher, confirm Confirm, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{client: client, fetcher: fetcher, confirm: confirm, log: log}
}

// Create validates the form and submits the evaluation definition.
func (m *Manager) Create(ctx context.Context, project string, form CreateForm) error {
	if strings.TrimSpace(form.Name) == "" {
		return schema.NewError(schema.ErrCodeValidation, "evaluation name is required")
	}

	variableSets, err := collectVariableSets(form)
	if err != nil {
		return err
	}

	payload := schema.EvaluationCreate{
		Name:         strings.TrimSpace(form.Name),
		Description:  strings.TrimSpace(form.Description),
		VariableSets: variableSets,
	}
	if err := m.client.PostExpect(ctx, transport.PathCreateEvaluation(project), payload, schema.StatusEvalCreated, nil); err != nil {
		return err
	}
	m.log.InfoContext(ctx, "evaluation created", "name", payload.Name, "variable_sets", len(variableSets))
	return nil
}

// collectVariableSets resolves the two mutually exclusive input modes.
func collectVariableSets(form CreateForm) (map[string]schema.VariableSet, error) {
	if strings.TrimSpace(form.BulkJSON) != "" {
		return parseBulkVariableSets(form.BulkJSON)
	}

	if len(form.Manual) == 0 {
		return nil, schema.NewError(schema.ErrCodeValidation, "at least one variable set is required")
	}

	sets := make(map[string]schema.VariableSet, len(form.Manual))
	for i, entry := range form.Manual {
		ordinal := i + 1
		variablesText := strings.TrimSpace(entry.VariablesJSON)
		if variablesText == "" {
			return nil, schema.NewErrorf(schema.ErrCodeValidation, "variables are required for variable set #%d", ordinal)
		}
		var variables map[string]any
		if err := jsonUnmarshalStrict(variablesText, &variables); err != nil {
			return nil, schema.NewErrorf(schema.ErrCodeValidation, "invalid JSON in variable set #%d", ordinal).WithCause(err)
		}
		numRuns, err := strconv.Atoi(strings.TrimSpace(entry.NumRuns))
		if err != nil || numRuns < 1 {
			return nil, schema.NewErrorf(schema.ErrCodeValidation, "number of runs for variable set #%d must be a positive integer", ordinal)
		}
		sets[identity.NewVariableSetID(ordinal)] = schema.VariableSet{
			Variables:   variables,
			IdealOutput: strings.TrimSpace(entry.IdealOutput),
			NumRuns:     numRuns,
		}
	}
	return sets, nil
}

// List returns the project's evaluations.
func (m *Manager) List(ctx context.Context, project string) ([]schema.EvaluationSummary, error) {
	var evaluations []schema.EvaluationSummary
	if err := m.client.Get(ctx, transport.PathEvaluations(project), &evaluations); err != nil {
		return nil, err
	}
	return evaluations, nil
}

// Run triggers an evaluation run and waits for its completion token.
func (m *Manager) Run(ctx context.Context, project, evaluationID string) error {
	if !m.confirmed("Running an evaluation may take some time. Continue?") {
		return nil
	}
	return m.client.PostExpect(ctx, transport.PathRunEvaluation(project, evaluationID), struct{}{}, schema.StatusEvalRunComplete, nil)
}

// Delete removes an evaluation.
func (m *Manager) Delete(ctx context.Context, project, evaluationID string) error {
	if !m.confirmed("Delete this evaluation?") {
		return nil
	}
	return m.client.PostExpect(ctx, transport.PathDeleteEvaluation(project, evaluationID), struct{}{}, schema.StatusEvalDeleted, nil)
}

// Fetch retrieves one evaluation with its variable sets and results.
func (m *Manager) Fetch(ctx context.Context, project, evaluationID string) (*schema.Evaluation, error) {
	var out struct {
		schema.Evaluation
		Error string `json:"error"`
	}
	if err := m.client.Get(ctx, transport.PathEvaluation(project, evaluationID), &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, schema.NewError(schema.ErrCodeApplication, out.Error)
	}
	return &out.Evaluation, nil
}

// RenderResults fetches an evaluation and renders its comparison tables,
// resolving workflow display names where the documents are reachable.
func (m *Manager) RenderResults(ctx context.Context, project, evaluationID string) (string, error) {
	ev, err := m.Fetch(ctx, project, evaluationID)
	if err != nil {
		return "", err
	}

	names := make(map[string]string, len(ev.Results))
	for wfID := range ev.Results {
		doc, err := m.fetcher.Fetch(ctx, schema.Scope{Project: project, Workflow: wfID})
		if err != nil {
			m.log.WarnContext(ctx, "workflow name lookup failed", "workflow_id", wfID, "error", err)
			continue
		}
		names[wfID] = doc.Name
	}
	return render.RenderEvaluationResults(ev, names), nil
}

func (m *Manager) confirmed(prompt string) bool {
	if m.confirm == nil {
		return true
	}
	return m.confirm(prompt)
}
