package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobcrawl/pkg/models"
)

// Selectors for the detail page's header region. The location has no stable
// hook of its own: it is the last sibling element after the company link's
// container.
const (
	headerSelector  = "div.jobsearch-JobInfoHeader"
	companySelector = `a[data-testid="company-name"]`
)

// ExtractJob pulls the title, company name and location out of a fetched
// detail page. The site's markup is not contractually stable, so any missing
// element is an ExtractionError the caller should treat as per-item.
func ExtractJob(doc *goquery.Document, jobURL string) (*models.Job, error) {
	header := doc.Find(headerSelector).First()
	if header.Length() == 0 {
		return nil, &ExtractionError{URL: jobURL, Reason: "job header region not found"}
	}

	title := strings.TrimSpace(header.Find("h1").First().Text())
	if title == "" {
		return nil, &ExtractionError{URL: jobURL, Reason: "job title not found"}
	}

	companyLink := header.Find(companySelector).First()
	if companyLink.Length() == 0 {
		return nil, &ExtractionError{URL: jobURL, Reason: "company name not found"}
	}
	company := strings.TrimSpace(companyLink.Text())

	location := companyLink.Parent().NextAll().Last()
	if location.Length() == 0 {
		return nil, &ExtractionError{URL: jobURL, Reason: "location not found"}
	}

	return &models.Job{
		JobID:       jobIDFromURL(jobURL),
		JobURL:      jobURL,
		Title:       title,
		CompanyName: company,
		Location:    strings.TrimSpace(location.Text()),
	}, nil
}
