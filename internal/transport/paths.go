package transport

import (
	"fmt"

	"github.com/rendis/flowdeck/pkg/schema"
)

// Endpoint path builders. Paths are a function of the explicit scope, never
// of ambient page state.

func PathDocument(s schema.Scope) string {
	return fmt.Sprintf("/report/%s/%s", s.Project, s.Workflow)
}

func PathAddStep(s schema.Scope) string      { return workflowPath(s, "add_step") }
func PathEditStep(s schema.Scope) string     { return workflowPath(s, "edit_step") }
func PathRemoveStep(s schema.Scope) string   { return workflowPath(s, "remove_step") }
func PathReorderSteps(s schema.Scope) string { return workflowPath(s, "reorder_steps") }

func PathAddFunction(s schema.Scope) string    { return workflowPath(s, "add_function") }
func PathEditFunction(s schema.Scope) string   { return workflowPath(s, "edit_function") }
func PathRemoveFunction(s schema.Scope) string { return workflowPath(s, "remove_function") }

func PathAddVariable(s schema.Scope) string    { return workflowPath(s, "add_variable") }
func PathEditVariable(s schema.Scope) string   { return workflowPath(s, "edit_variable") }
func PathRemoveVariable(s schema.Scope) string { return workflowPath(s, "remove_variable") }

func PathRunWorkflow(s schema.Scope) string { return workflowPath(s, "run") }

func PathAddWorkflow(project string) string {
	return fmt.Sprintf("/projects/%s/add_workflow", project)
}

func PathCopyWorkflow(project string) string {
	return fmt.Sprintf("/projects/%s/copy_workflow", project)
}

func PathDeleteWorkflow(project string) string {
	return fmt.Sprintf("/projects/%s/delete_workflow", project)
}

// PathOutputSchemas lists the structured-output schemas the server knows.
func PathOutputSchemas() string { return "/output_schemas" }

func PathEvaluations(project string) string {
	return fmt.Sprintf("/projects/%s/evaluations", project)
}

func PathCreateEvaluation(project string) string {
	return fmt.Sprintf("/projects/%s/evaluations/create", project)
}

func PathEvaluation(project, evaluationID string) string {
	return fmt.Sprintf("/projects/%s/evaluations/%s", project, evaluationID)
}

func PathRunEvaluation(project, evaluationID string) string {
	return PathEvaluation(project, evaluationID) + "/run"
}

func PathDeleteEvaluation(project, evaluationID string) string {
	return PathEvaluation(project, evaluationID) + "/delete"
}

func workflowPath(s schema.Scope, op string) string {
	return fmt.Sprintf("/projects/%s/workflow/%s/%s", s.Project, s.Workflow, op)
}
