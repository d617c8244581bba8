package validation

import (
	"errors"
	"slices"
	"strings"
)

// Report is the outcome of validating a record: every failure of every field,
// in field then rule declaration order.
type Report struct {
	Schema string  `json:"schema"`
	Errors []Error `json:"errors"`
}

// Valid reports whether no rule failed.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// ByField groups the failures by field name.
func (r Report) ByField() map[string][]Error {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make(map[string][]Error)
	for _, err := range r.Errors {
		out[err.Field] = append(out[err.Field], err)
	}
	return out
}

// Field returns the failures recorded for name.
func (r Report) Field(name string) []Error {
	var out []Error
	for _, err := range r.Errors {
		if err.Field == name {
			out = append(out, err)
		}
	}
	return out
}

// Messages returns the trimmed, de-duplicated messages per field, the shape
// renderers and JSON APIs usually expect.
func (r Report) Messages() map[string][]string {
	if len(r.Errors) == 0 {
		return nil
	}
	raw := make(map[string][]string)
	for _, err := range r.Errors {
		raw[err.Field] = append(raw[err.Field], err.Error())
	}
	out := make(map[string][]string, len(raw))
	for field, messages := range raw {
		if normalized := normalizeMessages(messages); len(normalized) > 0 {
			out[field] = normalized
		}
	}
	return out
}

// Err returns nil for a valid report and the joined failures otherwise.
func (r Report) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, err := range r.Errors {
		errs[i] = err
	}
	return errors.Join(errs...)
}

func normalizeMessages(messages []string) []string {
	var out []string
	for _, msg := range messages {
		msg = strings.TrimSpace(msg)
		if msg != "" && !slices.Contains(out, msg) {
			out = append(out, msg)
		}
	}
	return out
}
