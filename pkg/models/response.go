package models

import "time"

// ItemFailure reports one detail page that could not be extracted. Item
// failures are recoverable: the batch continues past them.
type ItemFailure struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// SearchResponse represents the response from a crawl request.
type SearchResponse struct {
	Success        bool          `json:"success"`
	Query          string        `json:"query"`
	Links          []string      `json:"links"`
	Jobs           []*Job        `json:"jobs,omitempty"`
	Failures       []ItemFailure `json:"failures,omitempty"`
	PagesFetched   int           `json:"pages_fetched"`
	ProcessingTime time.Duration `json:"processing_time"`
	RequestID      string        `json:"request_id"`
}

// BuildURLResponse returns a serialized search URL.
type BuildURLResponse struct {
	Success   bool   `json:"success"`
	URL       string `json:"url"`
	RequestID string `json:"request_id"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
