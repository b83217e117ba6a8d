package fetch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"jobcrawl/internal/config"
)

// RawFetcher fetches pages with a plain net/http client, no retries. Useful
// when the retrying client gets in the way (tests, debugging).
type RawFetcher struct {
	client    *http.Client
	userAgent string
}

// NewRawFetcher creates a fetcher backed by a plain HTTP client.
func NewRawFetcher(cfg *config.Config) *RawFetcher {
	return &RawFetcher{
		client:    &http.Client{Timeout: cfg.Crawler.RequestTimeout},
		userAgent: cfg.Crawler.UserAgent,
	}
}

// Fetch retrieves the URL and parses the response body.
func (f *RawFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("parse response body: %w", err)}
	}
	return doc, nil
}

// Cleanup releases fetcher resources
func (f *RawFetcher) Cleanup() {
	f.client.CloseIdleConnections()
}
