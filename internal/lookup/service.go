package lookup

import (
	"context"
	"log"
	"time"

	"xisbn/internal/platform/xisbn"
)

type Service struct {
	builder RequestBuilder
	fetcher Fetcher
}

func NewService(builder RequestBuilder, fetcher Fetcher) *Service {
	return &Service{builder: builder, fetcher: fetcher}
}

// Result is a fetched upstream body together with the format that was asked for.
type Result struct {
	Body   string
	Format string
}

// Lookup validates and fetches. Validation errors are returned before any
// upstream call is attempted.
func (s *Service) Lookup(ctx context.Context, identifier any, values map[string]any) (Result, error) {
	req, err := s.builder.NewRequestFromValues(identifier, values)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	body, err := s.fetcher.Do(ctx, req)
	if err != nil {
		log.Printf("lookup upstream failed isbn=%s error=%v", req.Identifier(), err)
		return Result{}, err
	}
	log.Printf("lookup ok isbn=%s bytes=%d duration_ms=%d", req.Identifier(), len(body), time.Since(start).Milliseconds())

	format, _ := req.Param("format")
	return Result{Body: body, Format: format}, nil
}

// URL returns the upstream URL for the given parameters without fetching it.
func (s *Service) URL(identifier any, values map[string]any) (string, error) {
	req, err := s.builder.NewRequestFromValues(identifier, values)
	if err != nil {
		return "", err
	}
	return req.URL(s.builder.BaseURL()), nil
}

// ContentType maps a requested response format to the media type served back.
func ContentType(format string) string {
	switch format {
	case "json":
		return "application/json; charset=utf-8"
	case "xml":
		return "application/xml; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "csv":
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

var _ RequestBuilder = (*xisbn.Client)(nil)
var _ Fetcher = (*xisbn.Client)(nil)
