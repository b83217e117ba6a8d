package query

import (
	"fmt"
	"strings"
)

// ConfigError reports an inconsistent field definition. It is a programmer
// error surfaced at construction time, never from Set or URL.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("query config: field %q: %s", e.Field, e.Reason)
}

// ValueError reports a rejected assignment. The query's state is unchanged
// after the rejection, so the caller may retry with a corrected value.
type ValueError struct {
	Field  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value for field %q: %s", e.Field, e.Reason)
}

// MissingFieldError reports that URL serialization was attempted while one or
// more required fields have no value.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field(s): %s", strings.Join(e.Fields, ", "))
}
