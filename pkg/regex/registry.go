// Package regex holds the pattern table shared by the Pattern, Email and Phone
// rules of a schema. Patterns are registered once on a Builder while a schema
// is compiled, then frozen into a read-only Registry.
package regex

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Canonical pattern identifiers and expressions.
const (
	EmailID      = "form_regex_email"
	EmailPattern = `^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`

	PhoneID      = "form_regex_us_phone"
	PhonePattern = `^(\+\d{1,2}\s)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`
)

var (
	// ErrDuplicateID is returned when an id is registered twice with two
	// different patterns.
	ErrDuplicateID = errors.New("regex: id already registered with a different pattern")
	// ErrInvalidPattern wraps compilation failures.
	ErrInvalidPattern = errors.New("regex: invalid pattern")
	// ErrEmptyID is returned for blank identifiers.
	ErrEmptyID = errors.New("regex: id is required")
)

type entry struct {
	source   string
	compiled *regexp.Regexp
}

// Builder collects patterns during schema compilation. It is owned by a single
// compiler and must not be shared until frozen.
type Builder struct {
	entries map[string]entry
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]entry)}
}

// Register adds id → pattern. Registering the same pair again is a no-op.
// Ids are trimmed here and in every lookup.
func (b *Builder) Register(id, pattern string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}
	if existing, ok := b.entries[id]; ok {
		if existing.source == pattern {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}

	compiled, err := compileFull(pattern)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidPattern, id, err)
	}
	b.entries[id] = entry{source: pattern, compiled: compiled}
	return nil
}

// RegisterEmail adds the canonical email pattern.
func (b *Builder) RegisterEmail() error {
	return b.Register(EmailID, EmailPattern)
}

// RegisterPhone adds the canonical US phone pattern.
func (b *Builder) RegisterPhone() error {
	return b.Register(PhoneID, PhonePattern)
}

// Has reports whether id is registered.
func (b *Builder) Has(id string) bool {
	_, ok := b.entries[strings.TrimSpace(id)]
	return ok
}

// Freeze returns a read-only registry holding the current entries. The
// builder may keep being used; later registrations do not affect the
// returned registry.
func (b *Builder) Freeze() *Registry {
	out := &Registry{entries: make(map[string]entry, len(b.entries))}
	for id, e := range b.entries {
		out.entries[id] = e
	}
	return out
}

// Registry is an immutable id → pattern table, safe for concurrent use.
type Registry struct {
	entries map[string]entry
}

// Lookup returns the compiled, fully anchored expression for id.
func (r *Registry) Lookup(id string) (*regexp.Regexp, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.entries[strings.TrimSpace(id)]
	return e.compiled, ok
}

// Pattern returns the source expression registered for id.
func (r *Registry) Pattern(id string) (string, bool) {
	if r == nil {
		return "", false
	}
	e, ok := r.entries[strings.TrimSpace(id)]
	return e.source, ok
}

// Match reports whether the whole value matches the pattern registered under
// id. Unknown ids never match.
func (r *Registry) Match(id, value string) bool {
	re, ok := r.Lookup(id)
	if !ok {
		return false
	}
	return re.MatchString(value)
}

// IDs returns the registered ids sorted.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered patterns.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// compileFull wraps the author's expression so it has to consume the entire
// input even when it was written without anchors.
func compileFull(pattern string) (*regexp.Regexp, error) {
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, err
	}
	return regexp.Compile(`^(?:` + pattern + `)$`)
}
