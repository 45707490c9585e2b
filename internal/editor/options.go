package editor

import (
	"context"

	"github.com/rendis/flowdeck/internal/transport"
)

// Getter is the slice of the transport client the options loader needs.
type Getter interface {
	Get(ctx context.Context, path string, out any) error
}

// LoadSchemaOptions lists the output schema names the server can validate
// structured responses against, for the json output-type selector.
func LoadSchemaOptions(ctx context.Context, client Getter) ([]string, error) {
	var out struct {
		Models []string `json:"models"`
	}
	if err := client.Get(ctx, transport.PathOutputSchemas(), &out); err != nil {
		return nil, err
	}
	return out.Models, nil
}
