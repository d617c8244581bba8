package attrs

import (
	"errors"
	"html"
	"strings"
)

// Kind distinguishes value-only attributes (`required`) from name/value pairs
// (`class='input'`).
type Kind uint8

const (
	KindSingle Kind = iota + 1
	KindPair
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindPair:
		return "pair"
	default:
		return "unknown"
	}
}

// ErrKindMismatch is returned when two attributes of different kinds are
// merged. Set never does this because identities include the kind.
var ErrKindMismatch = errors.New("attrs: cannot merge single and pair attributes")

// Attribute is a single HTML attribute entry. For KindSingle only Value is
// meaningful; for KindPair Name holds the attribute name.
type Attribute struct {
	Kind  Kind
	Name  string
	Value string
}

// Identity is the key an Attribute is stored under inside a Set. Two
// attributes with the same Identity are "the same attribute" regardless of
// their pair value.
type Identity struct {
	Kind Kind
	Key  string
}

// Single constructs a value-only attribute such as `required` or `checked`.
func Single(value string) Attribute {
	return Attribute{Kind: KindSingle, Value: value}
}

// Pair constructs a name/value attribute such as `class='btn'`.
func Pair(name, value string) Attribute {
	return Attribute{Kind: KindPair, Name: name, Value: value}
}

// Key returns the pair name or the single value.
func (a Attribute) Key() string {
	if a.Kind == KindPair {
		return a.Name
	}
	return a.Value
}

// Identity returns the set key for the attribute.
func (a Attribute) Identity() Identity {
	return Identity{Kind: a.Kind, Key: a.Key()}
}

// Same reports whether a and b address the same attribute.
func (a Attribute) Same(b Attribute) bool {
	return a.Identity() == b.Identity()
}

// Merge combines two attributes that share an identity. Singles are identical
// by definition so a is returned; pair values are joined with a space in
// argument order, skipping empty sides.
func Merge(a, b Attribute) (Attribute, error) {
	if a.Kind != b.Kind {
		return Attribute{}, ErrKindMismatch
	}
	if a.Kind == KindSingle {
		return a, nil
	}
	return Pair(a.Name, joinValues(a.Value, b.Value)), nil
}

func joinValues(left, right string) string {
	switch {
	case left == "":
		return right
	case right == "":
		return left
	default:
		return left + " " + right
	}
}

// Render returns the attribute with its leading separator, ready to be
// appended after a tag name: ` key='value'` or ` value`.
func (a Attribute) Render() string {
	return " " + a.String()
}

// String returns the attribute without the leading space.
func (a Attribute) String() string {
	if a.Kind == KindPair {
		var b strings.Builder
		b.Grow(len(a.Name) + len(a.Value) + 3)
		b.WriteString(a.Name)
		b.WriteString("='")
		b.WriteString(html.EscapeString(a.Value))
		b.WriteByte('\'')
		return b.String()
	}
	return a.Value
}
