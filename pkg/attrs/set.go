package attrs

import "strings"

// Mode controls how Insert combines an attribute with an existing entry of
// the same identity.
type Mode uint8

const (
	// ModeAppend merges pair values (`class='a b'`).
	ModeAppend Mode = iota
	// ModeReplace overwrites the existing entry's value.
	ModeReplace
)

func (m Mode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "append"
}

// Set is an insertion-ordered collection of attributes keyed by identity. The
// zero value is an empty set in append mode.
//
// A Set is not safe for concurrent mutation. Sets reachable from a compiled
// schema are never mutated, so they can be read from many goroutines.
type Set struct {
	entries []Attribute
	index   map[Identity]int
	mode    Mode
}

// NewSet returns a set in append mode seeded with attrs.
func NewSet(attrs ...Attribute) *Set {
	s := &Set{}
	for _, attr := range attrs {
		s.Insert(attr)
	}
	return s
}

// Replace switches subsequent inserts to overwrite semantics.
func (s *Set) Replace() *Set {
	s.mode = ModeReplace
	return s
}

// Append switches subsequent inserts to merge semantics.
func (s *Set) Append() *Set {
	s.mode = ModeAppend
	return s
}

// Mode reports the current insertion mode.
func (s *Set) Mode() Mode {
	if s == nil {
		return ModeAppend
	}
	return s.mode
}

// Insert adds attr or combines it with the entry that shares its identity.
// The position of an existing entry never changes.
func (s *Set) Insert(attr Attribute) *Set {
	if s.index == nil {
		s.index = make(map[Identity]int)
	}

	id := attr.Identity()
	pos, exists := s.index[id]
	if !exists {
		s.index[id] = len(s.entries)
		s.entries = append(s.entries, attr)
		return s
	}

	if s.mode == ModeReplace {
		s.entries[pos] = attr
		return s
	}

	// identities match, so kinds match and Merge cannot fail
	merged, _ := Merge(s.entries[pos], attr)
	s.entries[pos] = merged
	return s
}

// Remove deletes the entry sharing attr's identity. It reports whether an
// entry was removed; removing a missing attribute is a no-op.
func (s *Set) Remove(attr Attribute) bool {
	if s == nil || s.index == nil {
		return false
	}
	id := attr.Identity()
	pos, ok := s.index[id]
	if !ok {
		return false
	}

	s.entries = append(s.entries[:pos], s.entries[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.entries); i++ {
		s.index[s.entries[i].Identity()] = i
	}
	return true
}

// RemovePair deletes the pair attribute called name.
func (s *Set) RemovePair(name string) bool {
	return s.Remove(Pair(name, ""))
}

// RemoveSingle deletes the single attribute value.
func (s *Set) RemoveSingle(value string) bool {
	return s.Remove(Single(value))
}

// Contains reports whether an attribute with attr's identity is present.
func (s *Set) Contains(attr Attribute) bool {
	if s == nil || s.index == nil {
		return false
	}
	_, ok := s.index[attr.Identity()]
	return ok
}

// Get returns the stored attribute for id.
func (s *Set) Get(id Identity) (Attribute, bool) {
	if s == nil || s.index == nil {
		return Attribute{}, false
	}
	pos, ok := s.index[id]
	if !ok {
		return Attribute{}, false
	}
	return s.entries[pos], true
}

// Lookup returns the value of the pair attribute called name.
func (s *Set) Lookup(name string) (string, bool) {
	attr, ok := s.Get(Identity{Kind: KindPair, Key: name})
	return attr.Value, ok
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Attributes returns a copy of the entries in insertion order.
func (s *Set) Attributes() []Attribute {
	if s == nil || len(s.entries) == 0 {
		return nil
	}
	return append([]Attribute(nil), s.entries...)
}

// Clone returns an independent copy, including the current mode.
func (s *Set) Clone() *Set {
	out := &Set{}
	if s == nil {
		return out
	}
	out.mode = s.mode
	out.entries = append([]Attribute(nil), s.entries...)
	out.index = make(map[Identity]int, len(s.index))
	for id, pos := range s.index {
		out.index[id] = pos
	}
	return out
}

// Render writes every attribute in insertion order, each with its leading
// space.
func (s *Set) Render() string {
	if s.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for _, attr := range s.entries {
		b.WriteString(attr.Render())
	}
	return b.String()
}
