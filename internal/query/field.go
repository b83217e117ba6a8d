// Package query implements a declarative, constraint-checked builder for
// search-engine query strings. A Query holds an ordered set of Fields, each
// describing one logical parameter, and serializes the current state to a
// request URL. Fields sharing a wire key are space-joined in declaration
// order rather than overwritten, matching how the target site folds several
// logical filters onto a single parameter.
package query

import (
	"fmt"
	"strconv"
)

// Kind governs how a field's value is checked and rendered.
type Kind int

const (
	// String accepts string values only.
	String Kind = iota
	// Int accepts int values only.
	Int
	// Any accepts strings or ints. Choice membership is matched on the
	// rendered form, so mixed choice sets like ("last", 1, 3) work.
	Any
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Any:
		return "any"
	default:
		return "unknown"
	}
}

// Field describes one logical query parameter: the literal wire key it
// serializes to, the value kind, and the validation rules applied on every
// assignment. The zero value of Immutable means the field is mutable.
type Field struct {
	Name        string // logical name, unique within a Query
	WireKey     string // literal query-string parameter name; may be shared
	Kind        Kind
	Required    bool
	Immutable   bool   // value is fixed at construction and rejects assignment
	FixedValue  any    // always serialized when Immutable is set
	Format      string // optional fmt template applied before encoding, e.g. "$%d"
	Choices     []any  // allowed values; empty means unrestricted
	Requires    string // logical name of a field that must also hold a value
	DisplayName string // cosmetic label used in error output
}

// label returns the field's name decorated with its display name, mirroring
// how errors identify arguments to callers.
func (f *Field) label() string {
	if f.DisplayName != "" {
		return fmt.Sprintf("%s (%s)", f.Name, f.DisplayName)
	}
	return f.Name
}

// checkConfig verifies the field definition itself is coherent.
func (f *Field) checkConfig() error {
	if f.Name == "" {
		return &ConfigError{Field: f.WireKey, Reason: "logical name is empty"}
	}
	if f.WireKey == "" {
		return &ConfigError{Field: f.Name, Reason: "wire key is empty"}
	}
	if f.Immutable {
		if f.FixedValue == nil && f.Required {
			return &ConfigError{Field: f.Name, Reason: "immutable required field has no fixed value"}
		}
		if f.FixedValue != nil {
			if err := f.checkKind(f.FixedValue); err != nil {
				return &ConfigError{Field: f.Name, Reason: "fixed value: " + err.Error()}
			}
			if len(f.Choices) > 0 && !f.choiceMember(f.FixedValue) {
				return &ConfigError{Field: f.Name, Reason: fmt.Sprintf("fixed value %v is not among choices %v", f.FixedValue, f.Choices)}
			}
		}
	}
	for _, c := range f.Choices {
		if err := f.checkKind(c); err != nil {
			return &ConfigError{Field: f.Name, Reason: "choice: " + err.Error()}
		}
	}
	return nil
}

// Validate reports whether v may be assigned to this field.
func (f *Field) Validate(v any) error {
	if f.Immutable {
		if f.FixedValue == nil || f.render(v) != f.render(f.FixedValue) {
			return &ValueError{Field: f.label(), Reason: "field is immutable"}
		}
		return nil
	}
	if err := f.checkKind(v); err != nil {
		return &ValueError{Field: f.label(), Reason: err.Error()}
	}
	if len(f.Choices) > 0 && !f.choiceMember(v) {
		return &ValueError{Field: f.label(), Reason: fmt.Sprintf("expected one of %v; got %v", f.Choices, v)}
	}
	return nil
}

func (f *Field) checkKind(v any) error {
	switch v.(type) {
	case string:
		if f.Kind == Int {
			return fmt.Errorf("expected %s; got string", f.Kind)
		}
	case int:
		if f.Kind == String {
			return fmt.Errorf("expected %s; got int", f.Kind)
		}
	default:
		return fmt.Errorf("expected %s; got %T", f.Kind, v)
	}
	return nil
}

func (f *Field) choiceMember(v any) bool {
	rendered := canonical(v)
	for _, c := range f.Choices {
		if canonical(c) == rendered {
			return true
		}
	}
	return false
}

// render produces the serialized form of v, applying the format template if
// one is set. Percent-encoding happens one layer up, at URL assembly.
func (f *Field) render(v any) string {
	if f.Format != "" {
		return fmt.Sprintf(f.Format, v)
	}
	return canonical(v)
}

func canonical(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}
