package schema

import (
	"sort"
	"strings"

	"github.com/goliatone/go-webforms/pkg/attrs"
)

// Defaults maps a selector to pair attributes filled into matching fields at
// compile time. Selectors are value kind names ("text", "integer", "float"),
// applied to `<input>` fields only, or tag names ("textarea", "select"),
// applied to every field with that tag. Defaults never override an attribute
// the author set.
type Defaults map[string]map[string]string

// BuiltinDefaults returns the input types implied by each value kind.
func BuiltinDefaults() Defaults {
	return Defaults{
		KindText.String():    {"type": "text"},
		KindInteger.String(): {"type": "number"},
		KindFloat.String():   {"type": "number", "step": "any"},
	}
}

// Merge returns a copy of d with other layered on top.
func (d Defaults) Merge(other Defaults) Defaults {
	out := make(Defaults, len(d)+len(other))
	for _, src := range []Defaults{d, other} {
		for selector, values := range src {
			key := normalizeSelector(selector)
			if out[key] == nil {
				out[key] = make(map[string]string, len(values))
			}
			for name, value := range values {
				out[key][name] = value
			}
		}
	}
	return out
}

// For returns the defaults for a field with the given kind and tag in a
// stable order: kind defaults first, then tag defaults, each sorted by name.
func (d Defaults) For(kind ValueKind, tag string) []attrs.Attribute {
	if len(d) == 0 {
		return nil
	}
	var out []attrs.Attribute
	seen := map[string]struct{}{}
	add := func(values map[string]string) {
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, attrs.Pair(name, values[name]))
		}
	}

	tag = normalizeSelector(tag)
	if tag == "input" {
		add(d.lookup(kind.String()))
	}
	if tag != "" {
		add(d.lookup(tag))
	}
	return out
}

func (d Defaults) lookup(selector string) map[string]string {
	if values, ok := d[selector]; ok {
		return values
	}
	for key, values := range d {
		if normalizeSelector(key) == selector {
			return values
		}
	}
	return nil
}

func normalizeSelector(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// fillIn inserts attr only when no attribute shares its identity.
func fillIn(set *attrs.Set, attr attrs.Attribute) bool {
	if set.Contains(attr) {
		return false
	}
	set.Insert(attr)
	return true
}
