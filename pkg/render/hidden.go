package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-webforms/pkg/schema"
)

// HiddenField is a hidden input emitted right after the form wrapper. Use the
// helpers (Hidden, VersionField) to build one.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// VersionField constructs a hidden field used for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// Field converts the hidden value into an ordinary input field.
func (h HiddenField) Field() schema.Field {
	return schema.Input(h.Name).
		Type("hidden").
		Value(h.Value).
		Finish()
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields sorts hidden fields by name for deterministic output.
// Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		if _, seen := clean[key]; !seen {
			names = append(names, key)
		}
		clean[key] = value
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}
