package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownRegex is returned when a Pattern rule names an id that was
	// never registered.
	ErrUnknownRegex = errors.New("schema: unknown regex id")
	// ErrUnknownField is returned when a FieldMatch rule targets a missing
	// field, or when the validator is asked about one.
	ErrUnknownField = errors.New("schema: unknown field")
	// ErrRuleKindMismatch is returned when a rule does not apply to the
	// field's value kind.
	ErrRuleKindMismatch = errors.New("schema: rule does not apply to field kind")
	// ErrNumberKindMismatch is returned when a numeric bound's kind differs
	// from the field's numeric kind.
	ErrNumberKindMismatch = errors.New("schema: numeric bound kind does not match field kind")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("schema: duplicate field name")
	// ErrMissingName is returned for fields without a name.
	ErrMissingName = errors.New("schema: field name is required")
)

// CompileError locates a compile failure inside a schema.
type CompileError struct {
	Schema string
	Field  string
	Rule   string
	Err    error
}

func (e *CompileError) Error() string {
	if e == nil {
		return ""
	}
	parts := []string{"schema"}
	if e.Schema != "" {
		parts = append(parts, fmt.Sprintf("%q", e.Schema))
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field %q", e.Field))
	}
	if e.Rule != "" {
		parts = append(parts, e.Rule)
	}
	return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Err)
}

func (e *CompileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CompileErrors extracts every CompileError joined into err.
func CompileErrors(err error) []*CompileError {
	if err == nil {
		return nil
	}
	var out []*CompileError
	var walk func(error)
	walk = func(e error) {
		if ce, ok := e.(*CompileError); ok {
			out = append(out, ce)
			return
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var ce *CompileError
		if errors.As(e, &ce) {
			out = append(out, ce)
		}
	}
	walk(err)
	return out
}
