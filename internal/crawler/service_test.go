package crawler

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobcrawl/internal/config"
	"jobcrawl/internal/crawler/fetch"
	"jobcrawl/internal/query"
)

// urlFetcher serves canned HTML keyed by full URL.
type urlFetcher struct {
	pages map[string]string
}

func (f *urlFetcher) Fetch(_ context.Context, rawURL string) (*goquery.Document, error) {
	html, ok := f.pages[rawURL]
	if !ok {
		return nil, &fetch.TransportError{URL: rawURL, StatusCode: 404}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (f *urlFetcher) Cleanup() {}

func detailPage(title, company, location string) string {
	return fmt.Sprintf(`<html><body>
<div class="jobsearch-JobInfoHeader">
  <h1>%s</h1>
  <div>
    <div><a data-testid="company-name">%s</a></div>
    <div>%s</div>
  </div>
</div>
</body></html>`, title, company, location)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Crawler.PageSize = 10
	cfg.Crawler.PageDelay = time.Millisecond
	cfg.Crawler.MaxPages = 50
	return cfg
}

func TestServiceRunWithDetails(t *testing.T) {
	listURL := "https://indeed.com/jobs?q=python&l=Remote&start=0"
	fetcher := &urlFetcher{pages: map[string]string{
		listURL: listingHTML(1, []string{"good", "broken"}, false),
		"https://indeed.com/viewjob?jk=good": detailPage(
			"Python Developer", "Initech", "Remote"),
		// jk=broken resolves to a page without the header region.
		"https://indeed.com/viewjob?jk=broken": "<html><body>gone</body></html>",
	}}

	q, err := query.NewSimpleSearch()
	require.NoError(t, err)
	require.NoError(t, q.Set("what", "python"))
	require.NoError(t, q.Set("where", "Remote"))

	svc := NewService(testConfig(), fetcher, nil)
	result, err := svc.Run(context.Background(), q, Options{WithDetails: true})
	require.NoError(t, err, "a malformed detail page must not abort the batch")

	assert.Equal(t, 1, result.PagesFetched)
	assert.Len(t, result.Links, 2)

	require.Len(t, result.Jobs, 1)
	assert.Equal(t, "Python Developer", result.Jobs[0].Title)
	assert.Equal(t, "Initech", result.Jobs[0].CompanyName)
	assert.Equal(t, "good", result.Jobs[0].JobID)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "https://indeed.com/viewjob?jk=broken", result.Failures[0].URL)
}

func TestServiceRunLinksOnly(t *testing.T) {
	listURL := "https://indeed.com/jobs?q=python&l=Remote&start=0"
	fetcher := &urlFetcher{pages: map[string]string{
		listURL: listingHTML(1, []string{"a", "b"}, false),
	}}

	q, err := query.NewSimpleSearch()
	require.NoError(t, err)
	require.NoError(t, q.Set("what", "python"))
	require.NoError(t, q.Set("where", "Remote"))

	result, err := NewService(testConfig(), fetcher, nil).Run(context.Background(), q, Options{})
	require.NoError(t, err)
	assert.Len(t, result.Links, 2)
	assert.Empty(t, result.Jobs)
}

func TestServiceRunReportsPartialOnWalkFailure(t *testing.T) {
	// Only the first page exists; page two 404s mid-walk.
	listURL := "https://indeed.com/jobs?q=python&l=Remote&start=0"
	fetcher := &urlFetcher{pages: map[string]string{
		listURL: listingHTML(1, []string{"a"}, true),
	}}

	q, err := query.NewSimpleSearch()
	require.NoError(t, err)
	require.NoError(t, q.Set("what", "python"))
	require.NoError(t, q.Set("where", "Remote"))

	result, err := NewService(testConfig(), fetcher, nil).Run(context.Background(), q, Options{})
	require.Error(t, err)
	assert.Equal(t, 1, result.PagesFetched, "partial progress is reported with the failure")
	assert.Len(t, result.Links, 1)
}
