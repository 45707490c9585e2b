package panel

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/rendis/flowdeck/internal/document"
	"github.com/rendis/flowdeck/internal/evaluation"
	"github.com/rendis/flowdeck/internal/mutation"
	"github.com/rendis/flowdeck/internal/render"
)

//go:embed templates
var content embed.FS

// Deps holds the dependencies for the preview panel server.
type Deps struct {
	Fetcher     document.Fetcher
	Pipeline    *mutation.Pipeline
	Evaluations *evaluation.Manager
	Renderer    *render.ReportRenderer
	Logger      *slog.Logger
}

// Server is the local preview panel. It is a read-side companion to the
// authoring tool: workflow structure, execution reports, and evaluation
// results, rendered server-side from the canonical documents.
type Server struct {
	deps  Deps
	pages map[string]*template.Template

	mu      sync.Mutex
	running map[string]bool
	reports map[string]template.HTML
}

// NewServer creates a preview server with parsed templates.
func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	if deps.Renderer == nil {
		deps.Renderer = render.NewReportRenderer(nil)
	}

	base := template.Must(template.New("").ParseFS(content, "templates/base.html"))

	pageFiles := []string{
		"workflow.html",
		"evaluations.html",
		"evaluation_detail.html",
	}
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, pf := range pageFiles {
		clone := template.Must(base.Clone())
		pages[pf] = template.Must(clone.ParseFS(content, "templates/"+pf))
	}

	return &Server{
		deps:    deps,
		pages:   pages,
		running: make(map[string]bool),
		reports: make(map[string]template.HTML),
	}
}

// Handler returns the HTTP handler for the panel routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /workflows/{project}/{workflow}", s.handleWorkflow)
	mux.HandleFunc("GET /evaluations/{project}", s.handleEvaluations)
	mux.HandleFunc("GET /evaluations/{project}/{id}", s.handleEvaluationDetail)

	mux.HandleFunc("POST /api/workflows/{project}/{workflow}/run", s.handleRun)

	return mux
}

// renderPage executes a page template by name.
func (s *Server) renderPage(w http.ResponseWriter, page string, data any) {
	tmpl, ok := s.pages[page]
	if !ok {
		s.deps.Logger.Error("template not found", "page", page)
		http.Error(w, fmt.Sprintf("template %q not found", page), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		s.deps.Logger.Error("template render error", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// beginRun marks a workflow run as in flight. It reports false when a run
// for the same workflow is already active.
func (s *Server) beginRun(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[key] {
		return false
	}
	s.running[key] = true
	return true
}

func (s *Server) endRun(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, key)
}

func (s *Server) setReport(key string, html template.HTML) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[key] = html
}

func (s *Server) report(key string) template.HTML {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports[key]
}
