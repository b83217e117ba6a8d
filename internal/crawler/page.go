package crawler

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the listing page. The site renders each result card with a
// data-jk attribute carrying the job id, and a pagination block whose current
// page is a bare <b> element.
const (
	jobCardSelector    = "a[data-jk]"
	paginationSelector = "div.pagination"
	nextLinkSelector   = `a[aria-label="Next"]`
)

// ResultPage is one parsed listing page.
type ResultPage struct {
	Number  int      // self-reported page number, 1-based
	Links   []string // detail links in DOM order
	HasNext bool     // the page exposes a "next" affordance
}

// ParseResultPage pulls the job links and pagination state out of a fetched
// listing page. origin is the scheme://host prefix detail links are built
// against. A structurally absent pagination block is a PageParseError, not an
// end-of-results signal.
func ParseResultPage(doc *goquery.Document, origin string) (*ResultPage, error) {
	pagination := doc.Find(paginationSelector).First()
	if pagination.Length() == 0 {
		return nil, &PageParseError{Reason: "pagination block not found"}
	}

	current := strings.TrimSpace(pagination.Find("b").First().Text())
	number, err := strconv.Atoi(current)
	if err != nil {
		return nil, &PageParseError{Reason: "current page number not found in pagination block"}
	}

	page := &ResultPage{
		Number:  number,
		HasNext: pagination.Find(nextLinkSelector).Length() > 0,
	}

	doc.Find(jobCardSelector).Each(func(_ int, card *goquery.Selection) {
		if jk, ok := card.Attr("data-jk"); ok && jk != "" {
			page.Links = append(page.Links, origin+"/viewjob?jk="+url.QueryEscape(jk))
		}
	})

	return page, nil
}

// originOf reduces a URL to its scheme://host prefix.
func originOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return parsed.Scheme + "://" + parsed.Host
}

// jobIDFromURL reads the jk parameter back out of a detail link.
func jobIDFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("jk")
}
