package schema

// Status tokens returned by the server's mutation endpoints. A response
// missing its expected token (or carrying an "error" field) is a failure.
const (
	StatusStepAdded       = "step_added"
	StatusStepEdited      = "step_edited"
	StatusStepRemoved     = "step_removed"
	StatusStepsReordered  = "steps_reordered"
	StatusWorkflowAdded   = "workflow_added"
	StatusWorkflowCopied  = "workflow_copied"
	StatusWorkflowDeleted = "workflow_deleted"
	StatusFunctionAdded   = "function_added"
	StatusFunctionEdited  = "function_edited"
	StatusFunctionRemoved = "function_removed"
	StatusVariableAdded   = "variable_added"
	StatusVariableEdited  = "variable_edited"
	StatusVariableRemoved = "variable_removed"
	StatusEvalCreated     = "evaluation_created"
	StatusEvalDeleted     = "evaluation_deleted"
	StatusEvalRunComplete = "evaluation_run_complete"
	StatusSuccess         = "success"
)
