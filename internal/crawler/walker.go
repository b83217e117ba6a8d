// Package crawler walks paginated job-listing pages and extracts structured
// records from the detail pages they link to.
package crawler

import (
	"context"
	"errors"
	"fmt"

	"jobcrawl/internal/crawler/fetch"
	"jobcrawl/internal/logging"
	"jobcrawl/internal/query"
)

// ErrStopWalk may be returned from a visit callback to stop the walk early.
// The walk then finishes cleanly with the pages visited so far.
var ErrStopWalk = errors.New("stop walk")

// Walker advances a query's start cursor through the paginated result set.
// It owns the query for the duration of a walk; pages are visited strictly
// one at a time with the limiter's pause between fetches.
type Walker struct {
	query    *query.Query
	fetcher  fetch.Fetcher
	limiter  *Limiter
	logger   logging.Logger
	pageSize int
	maxPages int
}

// NewWalker creates a walker over q, which must carry an integer start
// field. maxPages of 0 means no cap.
func NewWalker(q *query.Query, fetcher fetch.Fetcher, limiter *Limiter, pageSize, maxPages int) *Walker {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Walker{
		query:    q,
		fetcher:  fetcher,
		limiter:  limiter,
		logger:   logging.GetGlobalLogger().WithField("component", "walker"),
		pageSize: pageSize,
		maxPages: maxPages,
	}
}

// Walk fetches result pages in order, calling visit for each one, until the
// site reports no further pages, visit returns ErrStopWalk, or the page cap
// is hit. It returns the number of pages successfully visited; transport and
// parse failures abort the walk and are returned wrapped with the failing
// page's ordinal so callers know how much was collected.
func (w *Walker) Walk(ctx context.Context, visit func(*ResultPage) error) (int, error) {
	offset := 0
	visited := 0

	for {
		if w.maxPages > 0 && visited >= w.maxPages {
			return visited, nil
		}

		if err := w.query.Set("start", offset); err != nil {
			return visited, err
		}
		pageURL, err := w.query.URL()
		if err != nil {
			return visited, err
		}

		if err := w.limiter.Wait(ctx, pageURL); err != nil {
			return visited, err
		}

		doc, err := w.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return visited, fmt.Errorf("result page %d: %w", visited+1, err)
		}
		page, err := ParseResultPage(doc, originOf(pageURL))
		if err != nil {
			return visited, fmt.Errorf("result page %d: %w", visited+1, err)
		}
		visited++

		w.logger.Debug("Fetched result page", map[string]interface{}{
			"page":   page.Number,
			"offset": offset,
			"links":  len(page.Links),
		})

		if err := visit(page); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return visited, nil
			}
			return visited, err
		}

		if !page.HasNext {
			return visited, nil
		}
		// Cross-check the self-reported page number against the cursor: a
		// stale or malformed page must not keep the loop going.
		if (page.Number-1)*w.pageSize != offset {
			w.logger.Warn("Page number disagrees with cursor, treating as end of results", map[string]interface{}{
				"reported_page": page.Number,
				"offset":        offset,
			})
			return visited, nil
		}

		offset += w.pageSize
	}
}

// Collect walks the full result set and returns every detail link in
// visitation order. On failure the links gathered before the failure are
// returned alongside the error.
func (w *Walker) Collect(ctx context.Context) ([]string, int, error) {
	var links []string
	visited, err := w.Walk(ctx, func(page *ResultPage) error {
		links = append(links, page.Links...)
		return nil
	})
	return links, visited, err
}
