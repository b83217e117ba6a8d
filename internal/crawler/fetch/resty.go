package fetch

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"jobcrawl/internal/config"
)

// RestyFetcher fetches pages through a shared resty client with retries.
type RestyFetcher struct {
	client *resty.Client
}

// NewRestyFetcher creates a fetcher backed by a configured resty client.
func NewRestyFetcher(cfg *config.Config) *RestyFetcher {
	client := resty.New().
		SetTimeout(cfg.Crawler.RequestTimeout).
		SetRetryCount(cfg.Crawler.MaxRetries).
		SetHeader("User-Agent", cfg.Crawler.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")

	return &RestyFetcher{client: client}
}

// Fetch retrieves the URL and parses the response body.
func (f *RestyFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	if resp.IsError() {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("parse response body: %w", err)}
	}
	return doc, nil
}

// Cleanup releases fetcher resources (no-op; the client holds no connections
// beyond the standard transport's idle pool)
func (f *RestyFetcher) Cleanup() {}
