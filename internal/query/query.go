package query

import (
	"fmt"
	"net/url"
	"strings"
)

// Query is a stateful, validated key/value builder bound to a base endpoint.
// It is created once with a fixed set of fields, mutated through Set over its
// lifetime, and serialized with URL. A Query is not safe for concurrent use;
// it is owned by exactly one crawl at a time.
type Query struct {
	baseURL string
	order   []string
	fields  map[string]*Field
	values  map[string]any
}

// New builds a Query from the given field definitions. Declaration order is
// preserved and matters: values sharing a wire key are joined in this order.
// Immutable fields with a fixed value are pre-set and always present.
func New(baseURL string, fields ...*Field) (*Query, error) {
	q := &Query{
		baseURL: baseURL,
		fields:  make(map[string]*Field, len(fields)),
		values:  make(map[string]any, len(fields)),
	}
	for _, f := range fields {
		if err := f.checkConfig(); err != nil {
			return nil, err
		}
		if _, exists := q.fields[f.Name]; exists {
			return nil, &ConfigError{Field: f.Name, Reason: "duplicate logical name"}
		}
		q.fields[f.Name] = f
		q.order = append(q.order, f.Name)
		if f.Immutable && f.FixedValue != nil {
			q.values[f.Name] = f.FixedValue
		}
	}
	for _, f := range fields {
		if f.Requires == "" {
			continue
		}
		if _, known := q.fields[f.Requires]; !known {
			return nil, &ConfigError{Field: f.Name, Reason: fmt.Sprintf("requires unknown field %q", f.Requires)}
		}
	}
	return q, nil
}

// Get returns the current value of the named field. The second result is
// false when the field has no value or the name is unknown; Get never fails.
func (q *Query) Get(name string) (any, bool) {
	v, ok := q.values[name]
	return v, ok
}

// Set assigns a value to the named field after running the field's own
// validation and the cross-field requires check against the state that would
// result. On failure the query is left unchanged.
func (q *Query) Set(name string, value any) error {
	f, ok := q.fields[name]
	if !ok {
		return &ValueError{Field: name, Reason: "no such field on this query"}
	}
	if err := f.Validate(value); err != nil {
		return err
	}

	// Tentative state: the assignment applied, nothing committed yet.
	present := func(n string) bool {
		if n == name {
			return true
		}
		_, has := q.values[n]
		return has
	}
	for _, n := range q.order {
		fd := q.fields[n]
		if fd.Requires == "" || !present(n) {
			continue
		}
		if !present(fd.Requires) {
			return &ValueError{
				Field:  fd.label(),
				Reason: fmt.Sprintf("requires %q to also be set", fd.Requires),
			}
		}
	}

	q.values[name] = value
	return nil
}

// URL serializes the current state. Fields with a present value are grouped
// by wire key; within a group the rendered values are joined with a single
// space in declaration order, then percent-encoded. Groups that render to an
// empty string are omitted. Required fields must hold a non-empty value.
func (q *Query) URL() (string, error) {
	var missing []string
	groups := make(map[string][]string)
	var keyOrder []string

	for _, name := range q.order {
		f := q.fields[name]
		v, ok := q.values[name]
		rendered := ""
		if ok {
			rendered = f.render(v)
		}
		if f.Required && rendered == "" {
			missing = append(missing, f.label())
			continue
		}
		if !ok || rendered == "" {
			continue
		}
		if _, seen := groups[f.WireKey]; !seen {
			keyOrder = append(keyOrder, f.WireKey)
		}
		groups[f.WireKey] = append(groups[f.WireKey], rendered)
	}

	if len(missing) > 0 {
		return "", &MissingFieldError{Fields: missing}
	}

	pairs := make([]string, 0, len(keyOrder))
	for _, key := range keyOrder {
		joined := strings.Join(groups[key], " ")
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(joined))
	}

	sep := "?"
	if parsed, err := url.Parse(q.baseURL); err == nil && parsed.RawQuery != "" {
		sep = "&"
	}
	return q.baseURL + sep + strings.Join(pairs, "&"), nil
}

// Apply assigns a batch of values by logical name. The whole batch is staged
// and validated, the requires invariant is checked against the post-batch
// state, and only then is anything committed; on failure the query is left
// unchanged. Mutually-requiring pairs can therefore only be established
// through Apply, in either order. JSON-decoded numbers (float64) are coerced
// to int where the field kind calls for it.
func (q *Query) Apply(values map[string]any) error {
	staged := make(map[string]any, len(values))
	for name, v := range values {
		f, ok := q.fields[name]
		if !ok {
			return &ValueError{Field: name, Reason: "no such field on this query"}
		}
		cv := coerce(f, v)
		if err := f.Validate(cv); err != nil {
			return err
		}
		staged[name] = cv
	}

	present := func(n string) bool {
		if _, ok := staged[n]; ok {
			return true
		}
		_, ok := q.values[n]
		return ok
	}
	for _, n := range q.order {
		fd := q.fields[n]
		if fd.Requires == "" || !present(n) {
			continue
		}
		if !present(fd.Requires) {
			return &ValueError{
				Field:  fd.label(),
				Reason: fmt.Sprintf("requires %q to also be set", fd.Requires),
			}
		}
	}

	for name, v := range staged {
		q.values[name] = v
	}
	return nil
}

func coerce(f *Field, v any) any {
	if fv, ok := v.(float64); ok && f.Kind != String && fv == float64(int(fv)) {
		return int(fv)
	}
	return v
}
