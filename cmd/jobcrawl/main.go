package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobcrawl/internal/config"
	"jobcrawl/internal/crawler"
	"jobcrawl/internal/crawler/fetch"
	"jobcrawl/internal/logging"
	"jobcrawl/internal/query"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	preset := flag.String("preset", "simple", "search preset: simple or advanced")
	what := flag.String("what", "", "search terms")
	where := flag.String("where", "", "location")
	jobType := flag.String("job-type", "", "job type filter")
	experience := flag.String("experience", "", "experience level filter")
	radius := flag.Int("radius", 0, "search radius in miles")
	minSalary := flag.Int("min-salary", 0, "minimum salary folded into the search terms")
	maxPages := flag.Int("max-pages", 0, "page cap for this run (0 uses the configured cap)")
	details := flag.Bool("details", false, "fetch and extract every detail page")
	urlOnly := flag.Bool("url-only", false, "print the search URL and exit without crawling")
	verbose := flag.Bool("verbose", false, "log page-by-page progress")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The CLI keeps logging plain text on stdout regardless of any adapter
	// setup meant for the server.
	cfg.Logging.Format = "text"
	cfg.Logging.Adapters = nil
	if !*verbose {
		cfg.Logging.Level = "warn"
	}
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseGlobalLogger()

	q, err := buildQuery(*preset, fieldValues(*what, *where, *jobType, *experience, *radius, *minSalary))
	if err != nil {
		log.Fatalf("Invalid search: %v", err)
	}

	searchURL, err := q.URL()
	if err != nil {
		log.Fatalf("Invalid search: %v", err)
	}
	if *urlOnly {
		fmt.Println(searchURL)
		return
	}

	fetcher, err := fetch.New(cfg.Crawler.Engine, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize fetch engine: %v", err)
	}
	defer fetcher.Cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := crawler.NewService(cfg, fetcher, nil)
	result, err := svc.Run(ctx, q, crawler.Options{MaxPages: *maxPages, WithDetails: *details})
	if err != nil {
		// Partial results are still printed before reporting the failure.
		printResult(result, *details)
		log.Fatalf("Crawl aborted after %d page(s): %v", result.PagesFetched, err)
	}
	printResult(result, *details)
}

func fieldValues(what, where, jobType, experience string, radius, minSalary int) map[string]any {
	fields := map[string]any{}
	if what != "" {
		fields["what"] = what
	}
	if where != "" {
		fields["where"] = where
	}
	if jobType != "" {
		fields["job_type"] = jobType
	}
	if experience != "" {
		fields["experience"] = experience
	}
	if radius != 0 {
		fields["radius"] = radius
	}
	if minSalary != 0 {
		fields["min_salary"] = minSalary
	}
	return fields
}

func buildQuery(preset string, fields map[string]any) (*query.Query, error) {
	var q *query.Query
	var err error
	switch preset {
	case "simple":
		q, err = query.NewSimpleSearch()
	case "advanced":
		q, err = query.NewAdvancedSearch()
	default:
		return nil, fmt.Errorf("unknown preset %q", preset)
	}
	if err != nil {
		return nil, err
	}
	if err := q.Apply(fields); err != nil {
		return nil, err
	}
	return q, nil
}

func printResult(result *crawler.Result, details bool) {
	if !details {
		for _, link := range result.Links {
			fmt.Println(link)
		}
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, job := range result.Jobs {
		if err := enc.Encode(job); err != nil {
			log.Fatalf("Failed to encode job: %v", err)
		}
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "failed: %s: %s\n", failure.URL, failure.Reason)
	}
}
