package crawler

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseResultPage(t *testing.T) {
	doc := mustDoc(t, listingHTML(2, []string{"abc123", "def456"}, true))

	page, err := ParseResultPage(doc, "https://indeed.com")
	require.NoError(t, err)

	assert.Equal(t, 2, page.Number)
	assert.True(t, page.HasNext)
	assert.Equal(t, []string{
		"https://indeed.com/viewjob?jk=abc123",
		"https://indeed.com/viewjob?jk=def456",
	}, page.Links)
}

func TestParseResultPageEncodesJobID(t *testing.T) {
	doc := mustDoc(t, listingHTML(1, []string{"a&b"}, false))

	page, err := ParseResultPage(doc, "https://indeed.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://indeed.com/viewjob?jk=a%26b"}, page.Links)
}

func TestParseResultPageLastPage(t *testing.T) {
	doc := mustDoc(t, listingHTML(3, []string{"x"}, false))

	page, err := ParseResultPage(doc, "https://indeed.com")
	require.NoError(t, err)
	assert.False(t, page.HasNext)
}

func TestParseResultPageNoPagination(t *testing.T) {
	doc := mustDoc(t, "<html><body><a data-jk='x'></a></body></html>")

	_, err := ParseResultPage(doc, "https://indeed.com")
	var pe *PageParseError
	require.ErrorAs(t, err, &pe)
}

func TestParseResultPageNoPageNumber(t *testing.T) {
	doc := mustDoc(t, "<html><body><div class='pagination'><a aria-label='Next'>Next</a></div></body></html>")

	_, err := ParseResultPage(doc, "https://indeed.com")
	var pe *PageParseError
	require.ErrorAs(t, err, &pe)
}

func TestOriginOf(t *testing.T) {
	assert.Equal(t, "https://indeed.com", originOf("https://indeed.com/jobs?q=python&start=10"))
}

func TestJobIDFromURL(t *testing.T) {
	assert.Equal(t, "abc123", jobIDFromURL("https://indeed.com/viewjob?jk=abc123"))
	assert.Equal(t, "", jobIDFromURL("https://indeed.com/jobs"))
}
