package crawler

import "fmt"

// PageParseError reports a result page whose structure did not match
// expectations — most importantly a missing pagination block. It is fatal to
// the crawl run: guessing "no more pages" would silently truncate results.
type PageParseError struct {
	URL    string
	Reason string
}

func (e *PageParseError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("parse %s: %s", e.URL, e.Reason)
	}
	return fmt.Sprintf("parse result page: %s", e.Reason)
}

// ExtractionError reports a detail page missing the expected header region or
// one of its sub-elements. It is recoverable per item: the batch skips the
// item and continues.
type ExtractionError struct {
	URL    string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.URL, e.Reason)
}
