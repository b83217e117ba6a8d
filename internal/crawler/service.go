package crawler

import (
	"context"

	"jobcrawl/internal/config"
	"jobcrawl/internal/crawler/fetch"
	"jobcrawl/internal/logging"
	"jobcrawl/internal/query"
	"jobcrawl/pkg/models"
	"jobcrawl/pkg/utils"
)

// Service runs complete crawls: walk the result pages, then extract a record
// from each detail page. A single Service is safe to share; each Run owns its
// query exclusively for the duration.
type Service struct {
	cfg     *config.Config
	fetcher fetch.Fetcher
	limiter *Limiter
	cache   *utils.RedisClient // nil when caching is disabled
	logger  logging.Logger
}

// Options tunes one crawl run.
type Options struct {
	MaxPages    int  // 0 falls back to the configured cap
	WithDetails bool // also fetch and extract every detail page
}

// Result is what a crawl produced. On a failed run it carries everything
// collected before the failure.
type Result struct {
	Links        []string
	Jobs         []*models.Job
	Failures     []models.ItemFailure
	PagesFetched int
}

// NewService creates a crawl service. cache may be nil.
func NewService(cfg *config.Config, fetcher fetch.Fetcher, cache *utils.RedisClient) *Service {
	return &Service{
		cfg:     cfg,
		fetcher: fetcher,
		limiter: NewLimiter(cfg.Crawler.PageDelay),
		cache:   cache,
		logger:  logging.GetGlobalLogger().WithField("component", "crawler"),
	}
}

// Run walks the query's result set and, when requested, extracts a record
// per detail link. Walk-level failures (transport, page parse) abort the run
// and are returned with the partial result; detail-level failures are
// per-item and recorded in Result.Failures.
func (s *Service) Run(ctx context.Context, q *query.Query, opts Options) (*Result, error) {
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = s.cfg.Crawler.MaxPages
	}

	walker := NewWalker(q, s.fetcher, s.limiter, s.cfg.Crawler.PageSize, maxPages)
	links, pages, err := walker.Collect(ctx)
	result := &Result{Links: links, PagesFetched: pages}
	if err != nil {
		s.logger.Error("Crawl aborted", map[string]interface{}{
			"pages_collected": pages,
			"links_collected": len(links),
			"error":           err.Error(),
		})
		return result, err
	}

	if !opts.WithDetails {
		return result, nil
	}

	for _, link := range links {
		job, err := s.extractOne(ctx, link)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			s.logger.Warn("Skipping detail page", map[string]interface{}{
				"url":   link,
				"error": err.Error(),
			})
			result.Failures = append(result.Failures, models.ItemFailure{URL: link, Reason: err.Error()})
			continue
		}
		result.Jobs = append(result.Jobs, job)
	}

	return result, nil
}

// extractOne resolves a single detail link to a record, consulting the cache
// first. Failures here are per-item recoverable, including transport ones: a
// dead detail page must not abort the batch.
func (s *Service) extractOne(ctx context.Context, link string) (*models.Job, error) {
	jobID := jobIDFromURL(link)

	if s.cache != nil && jobID != "" {
		if job, ok, err := s.cache.GetCachedJob(ctx, jobID); err == nil && ok {
			return job, nil
		}
	}

	if err := s.limiter.Wait(ctx, link); err != nil {
		return nil, err
	}
	doc, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}

	job, err := ExtractJob(doc, link)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && jobID != "" {
		if err := s.cache.CacheJob(ctx, job); err != nil {
			s.logger.Debug("Failed to cache job", map[string]interface{}{
				"job_id": jobID,
				"error":  err.Error(),
			})
		}
	}

	return job, nil
}
