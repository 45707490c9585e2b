package view

import (
	"context"
	"log/slog"

	"github.com/rendis/flowdeck/internal/document"
	"github.com/rendis/flowdeck/pkg/schema"
)

// RefreshFunc adapts a function to the refresher contract mutation
// pipelines expect after a successful submit.
type RefreshFunc func(ctx context.Context, scope schema.Scope) error

// Refresh implements mutation.Refresher.
func (f RefreshFunc) Refresh(ctx context.Context, scope schema.Scope) error {
	return f(ctx, scope)
}

// DocumentView re-fetches the workflow document after every accepted
// mutation and hands the fresh copy to a presentation callback. Nothing is
// patched in place; the server copy is the only source of truth.
type DocumentView struct {
	fetch    document.Fetcher
	onUpdate func(*schema.WorkflowDocument)
	log      *slog.Logger
}

// NewDocumentView wires a view over a fetcher. onUpdate receives each
// freshly fetched document; a nil callback makes refreshes fetch-only.
func NewDocumentView(fetch document.Fetcher, onUpdate func(*schema.WorkflowDocument), log *slog.Logger) *DocumentView {
	if log == nil {
		log = slog.Default()
	}
	return &DocumentView{fetch: fetch, onUpdate: onUpdate, log: log}
}

// Refresh fetches the current document and pushes it to the callback.
func (v *DocumentView) Refresh(ctx context.Context, scope schema.Scope) error {
	doc, err := v.fetch.Fetch(ctx, scope)
	if err != nil {
		return err
	}
	v.log.DebugContext(ctx, "document refreshed", "workflow_id", doc.WorkflowID, "steps", len(doc.Steps))
	if v.onUpdate != nil {
		v.onUpdate(doc)
	}
	return nil
}
