package models

// BuildURLRequest asks for a search URL to be built without crawling.
type BuildURLRequest struct {
	Preset string         `json:"preset" validate:"required,oneof=simple advanced"`
	Fields map[string]any `json:"fields" validate:"required"`
}

// SearchRequest represents the request payload for a crawl.
type SearchRequest struct {
	Preset      string         `json:"preset" validate:"required,oneof=simple advanced"`
	Fields      map[string]any `json:"fields" validate:"required"`
	MaxPages    int            `json:"max_pages,omitempty" validate:"omitempty,min=1"`
	WithDetails bool           `json:"with_details,omitempty"`
}
