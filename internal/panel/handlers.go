package panel

import (
	"html/template"
	"net/http"

	"github.com/rendis/flowdeck/internal/logging"
	"github.com/rendis/flowdeck/pkg/schema"
)

func runKey(scope schema.Scope) string {
	return scope.Project + "/" + scope.Workflow
}

// handleWorkflow shows the workflow's structure and its latest execution
// report, if one has been produced in this session.
func (s *Server) handleWorkflow(w http.ResponseWriter, r *http.Request) {
	scope := schema.Scope{Project: r.PathValue("project"), Workflow: r.PathValue("workflow")}
	ctx := logging.WithScope(r.Context(), scope.Project, scope.Workflow)

	doc, err := s.deps.Fetcher.Fetch(ctx, scope)
	if err != nil {
		s.deps.Logger.Error("workflow fetch failed", "workflow_id", scope.Workflow, "error", err)
		http.Error(w, "workflow not available", http.StatusBadGateway)
		return
	}

	s.renderPage(w, "workflow.html", map[string]any{
		"Title":    doc.Name,
		"Scope":    scope,
		"Document": doc,
		"Report":   s.report(runKey(scope)),
	})
}

// handleRun triggers one workflow execution. A second run request for the
// same workflow while one is in flight is rejected with 409.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	scope := schema.Scope{Project: r.PathValue("project"), Workflow: r.PathValue("workflow")}
	ctx := logging.WithScope(r.Context(), scope.Project, scope.Workflow)
	key := runKey(scope)

	if !s.beginRun(key) {
		writeError(w, http.StatusConflict, "a run for this workflow is already in progress")
		return
	}
	defer s.endRun(key)

	result, err := s.deps.Pipeline.RunWorkflow(ctx, scope)
	if err != nil {
		s.deps.Logger.Error("workflow run failed", "workflow_id", scope.Workflow, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.setReport(key, template.HTML(s.deps.Renderer.Render(result)))
	writeJSON(w, http.StatusOK, map[string]string{"status": schema.StatusSuccess})
}

// handleEvaluations lists a project's evaluations.
func (s *Server) handleEvaluations(w http.ResponseWriter, r *http.Request) {
	project := r.PathValue("project")
	ctx := logging.WithProjectID(r.Context(), project)
	evaluations, err := s.deps.Evaluations.List(ctx, project)
	if err != nil {
		s.deps.Logger.Error("evaluation list failed", "project_id", project, "error", err)
		http.Error(w, "evaluations not available", http.StatusBadGateway)
		return
	}
	s.renderPage(w, "evaluations.html", map[string]any{
		"Title":       "Evaluations",
		"Project":     project,
		"Evaluations": evaluations,
	})
}

// handleEvaluationDetail shows one evaluation's comparison tables.
func (s *Server) handleEvaluationDetail(w http.ResponseWriter, r *http.Request) {
	project := r.PathValue("project")
	evaluationID := r.PathValue("id")
	ctx := logging.WithProjectID(r.Context(), project)

	html, err := s.deps.Evaluations.RenderResults(ctx, project, evaluationID)
	if err != nil {
		s.deps.Logger.Error("evaluation render failed", "evaluation_id", evaluationID, "error", err)
		http.Error(w, "evaluation not available", http.StatusBadGateway)
		return
	}
	s.renderPage(w, "evaluation_detail.html", map[string]any{
		"Title":   "Evaluation Results",
		"Project": project,
		"Results": template.HTML(html),
	})
}
