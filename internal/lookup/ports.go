package lookup

import (
	"context"

	"xisbn/internal/platform/xisbn"
)

// RequestBuilder validates lookup parameters into a request.
type RequestBuilder interface {
	NewRequest(identifier string, opts xisbn.Options) (xisbn.Request, error)
	NewRequestFromValues(identifier any, values map[string]any) (xisbn.Request, error)
	BaseURL() string
}

// Fetcher performs the upstream call for a validated request.
type Fetcher interface {
	Do(ctx context.Context, req xisbn.Request) (string, error)
}
