package document

import (
	"context"

	"github.com/rendis/flowdeck/internal/transport"
	"github.com/rendis/flowdeck/pkg/schema"
)

// Fetcher retrieves the full workflow document for a scope. Implementations
// other than the HTTP-backed one exist only in tests.
type Fetcher interface {
	Fetch(ctx context.Context, scope schema.Scope) (*schema.WorkflowDocument, error)
}

// HTTPFetcher fetches workflow documents from the server.
type HTTPFetcher struct {
	client *transport.Client
}

// NewFetcher creates an HTTPFetcher on top of the given client.
func NewFetcher(client *transport.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, scope schema.Scope) (*schema.WorkflowDocument, error) {
	var doc schema.WorkflowDocument
	if err := f.client.Get(ctx, transport.PathDocument(scope), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
