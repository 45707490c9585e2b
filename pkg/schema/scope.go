package schema

// Scope identifies the project and workflow a request operates on. It is
// passed explicitly into every fetcher/pipeline call instead of being read
// from ambient state, so the pipeline is testable without a page context.
type Scope struct {
	Project  string
	Workflow string
}
