package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobcrawl/internal/config"
	"jobcrawl/internal/crawler"
	"jobcrawl/internal/crawler/fetch"
	"jobcrawl/pkg/models"
)

// cannedFetcher serves fixed HTML keyed by full URL.
type cannedFetcher struct {
	pages map[string]string
}

func (f *cannedFetcher) Fetch(_ context.Context, rawURL string) (*goquery.Document, error) {
	html, ok := f.pages[rawURL]
	if !ok {
		return nil, &fetch.TransportError{URL: rawURL, StatusCode: 404}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (f *cannedFetcher) Cleanup() {}

func handlerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Crawler.PageSize = 10
	cfg.Crawler.PageDelay = time.Millisecond
	cfg.Crawler.MaxPages = 50
	return cfg
}

func postJSON(t *testing.T, handler echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec
}

func TestBuildURLHandler(t *testing.T) {
	rec := postJSON(t, BuildURLHandler(handlerConfig()),
		`{"preset":"simple","fields":{"what":"python","where":"New York City, New York"}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.BuildURLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "https://indeed.com/jobs?q=python&l=New+York+City%2C+New+York", resp.URL)
	assert.NotEmpty(t, resp.RequestID)
}

func TestBuildURLHandlerRejectsBadField(t *testing.T) {
	rec := postJSON(t, BuildURLHandler(handlerConfig()),
		`{"preset":"simple","fields":{"what":"python","where":"Remote","job_type":"freelance"}}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_query", resp.Error)
}

func TestBuildURLHandlerRejectsUnknownPreset(t *testing.T) {
	rec := postJSON(t, BuildURLHandler(handlerConfig()),
		`{"preset":"fancy","fields":{"what":"python"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuildURLHandlerMissingRequiredField(t *testing.T) {
	rec := postJSON(t, BuildURLHandler(handlerConfig()),
		`{"preset":"simple","fields":{"what":"python"}}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "Where")
}

func TestSearchHandler(t *testing.T) {
	fetcher := &cannedFetcher{pages: map[string]string{
		"https://indeed.com/jobs?q=python&l=Remote&start=0": `<html><body>
<a data-jk="abc123" href="/viewjob?jk=abc123">job</a>
<div class="pagination"><b>1</b></div>
</body></html>`,
	}}
	cfg := handlerConfig()
	svc := crawler.NewService(cfg, fetcher, nil)

	rec := postJSON(t, SearchHandler(cfg, svc),
		`{"preset":"simple","fields":{"what":"python","where":"Remote"}}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.PagesFetched)
	assert.Equal(t, []string{"https://indeed.com/viewjob?jk=abc123"}, resp.Links)
	assert.Empty(t, resp.Jobs)
}

func TestSearchHandlerReportsCrawlFailure(t *testing.T) {
	// No pages at all: the first fetch 404s.
	cfg := handlerConfig()
	svc := crawler.NewService(cfg, &cannedFetcher{pages: map[string]string{}}, nil)

	rec := postJSON(t, SearchHandler(cfg, svc),
		`{"preset":"simple","fields":{"what":"python","where":"Remote"}}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "crawl_failed", resp.Error)
}
