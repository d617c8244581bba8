package validation

import (
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-webforms/pkg/schema"
)

// ErrorMapping splits an external error payload into field messages keyed by
// schema field name and form level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form level messages, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	return normalizeMessages(append(slices.Clone(existing), extras...))
}

// MapErrorPayload maps server side errors (JSON pointer, dotted or bracketed
// paths such as `/body/email` or `$.data.tags[0]`) onto the fields of s.
// Paths that do not resolve to a field become form level messages so nothing
// is lost. Paths are visited in sorted order so the result is stable.
//
// A path resolves to the longest leading run of its segments that names a
// field: with fields `address` and `name`, `/address/name` belongs to
// `address`, never to `name`.
func MapErrorPayload(s *schema.Schema, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	paths := make([]string, 0, len(payload))
	for path := range payload {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	for _, path := range paths {
		messages := normalizeMessages(payload[path])
		if len(messages) == 0 {
			continue
		}
		name, ok := resolveField(s, path)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[name] = normalizeMessages(append(mapping.Fields[name], messages...))
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// Merge folds the report's messages into an existing mapping. Report
// messages come first for each field.
func (m ErrorMapping) Merge(report Report) ErrorMapping {
	out := ErrorMapping{Form: m.Form}
	add := func(field string, messages []string) {
		if out.Fields == nil {
			out.Fields = make(map[string][]string)
		}
		out.Fields[field] = normalizeMessages(append(out.Fields[field], messages...))
	}
	for field, messages := range report.Messages() {
		add(field, messages)
	}
	for field, messages := range m.Fields {
		add(field, messages)
	}
	return out
}

func resolveField(s *schema.Schema, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if s == nil || isFormLevelKey(raw) {
		return "", false
	}
	// Field names such as `user[email]` are matched verbatim first.
	if _, ok := s.Field(raw); ok {
		return raw, true
	}

	segments := pathSegments(raw)
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := s.Field(candidate); ok {
			return candidate, true
		}
	}
	return "", false
}

// envelopes are leading path segments servers wrap payloads in.
var envelopes = []string{"body", "request", "payload", "data", "attributes"}

// pathSegments splits a JSON pointer, dotted or bracketed path into field
// segments. Leading envelopes and array indexes are dropped and JSON pointer
// escapes are decoded.
func pathSegments(path string) []string {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		switch r {
		case '/', '.', '[', ']', '#', '$':
			return true
		}
		return false
	})

	var out []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := strconv.Atoi(part); err == nil {
			continue
		}
		if len(out) == 0 && slices.Contains(envelopes, strings.ToLower(part)) {
			continue
		}
		out = append(out, strings.NewReplacer("~1", "/", "~0", "~").Replace(part))
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(key) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	}
	return false
}
