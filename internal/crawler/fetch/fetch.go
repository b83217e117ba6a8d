// Package fetch provides the page-fetch collaborator the crawler is written
// against. Engines retrieve a URL and hand back a parsed goquery document;
// the crawler never touches raw markup or the HTTP client directly.
package fetch

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"jobcrawl/internal/config"
)

// Fetcher retrieves and parses one page.
type Fetcher interface {
	// Fetch retrieves the URL and parses the response body. Network
	// failures and non-success statuses surface as *TransportError.
	Fetch(ctx context.Context, url string) (*goquery.Document, error)

	// Cleanup releases any resources held by the fetcher
	Cleanup()
}

// New creates a fetcher for the given engine type.
func New(engine string, cfg *config.Config) (Fetcher, error) {
	switch engine {
	case "resty", "auto", "":
		return NewRestyFetcher(cfg), nil
	case "raw":
		return NewRawFetcher(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported fetch engine: %s", engine)
	}
}

// TransportError reports a failed page retrieval: a network error or a
// non-success HTTP status.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
