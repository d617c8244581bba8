package schema

import (
	"fmt"

	"github.com/goliatone/go-webforms/pkg/attrs"
	"github.com/goliatone/go-webforms/pkg/rules"
)

// InlinePattern is a regex declared directly on a field with Match. The
// compiler registers it under ID.
type InlinePattern struct {
	ID      string
	Pattern string
}

// Field is a finished, immutable field description: an HTML tag, the base
// attributes, a value kind and the rules attached to it.
type Field struct {
	tag      string
	name     string
	kind     ValueKind
	attrs    *attrs.Set
	rules    []rules.Rule
	optional bool
	inline   []InlinePattern
}

// Tag returns the HTML element name.
func (f Field) Tag() string { return f.tag }

// Name returns the field (and `name` attribute) name.
func (f Field) Name() string { return f.name }

// Kind returns the declared value kind.
func (f Field) Kind() ValueKind {
	if f.kind == 0 {
		return KindText
	}
	return f.kind
}

// Optional reports whether absent values skip validation.
func (f Field) Optional() bool { return f.optional }

// Rules returns a copy of the field's rules in declaration order.
func (f Field) Rules() []rules.Rule {
	return append([]rules.Rule(nil), f.rules...)
}

// InlinePatterns returns the patterns declared with Match.
func (f Field) InlinePatterns() []InlinePattern {
	return append([]InlinePattern(nil), f.inline...)
}

// Attrs returns a copy of the base attribute set.
func (f Field) Attrs() *attrs.Set {
	if f.attrs == nil {
		return attrs.NewSet()
	}
	return f.attrs.Clone()
}

// Attributes returns the base attributes in insertion order.
func (f Field) Attributes() []attrs.Attribute {
	if f.attrs == nil {
		return nil
	}
	return f.attrs.Attributes()
}

// Attr returns the value of a pair attribute.
func (f Field) Attr(name string) (string, bool) {
	if f.attrs == nil {
		return "", false
	}
	return f.attrs.Lookup(name)
}

// HasAttr reports whether the base attributes contain attr.
func (f Field) HasAttr(attr attrs.Attribute) bool {
	return f.attrs != nil && f.attrs.Contains(attr)
}

// Required reports whether the `required` attribute is present.
func (f Field) Required() bool {
	return f.HasAttr(attrs.Single("required"))
}

func (f Field) withAttrs(set *attrs.Set) Field {
	f.attrs = set
	return f
}

// FieldBuilder accumulates a field description. Builders are not safe for
// concurrent use; Finish returns an independent Field so the builder may be
// reused or discarded afterwards.
type FieldBuilder struct {
	tag      string
	name     string
	kind     ValueKind
	attrs    *attrs.Set
	rules    []rules.Rule
	optional bool
	inline   []InlinePattern
}

// NewField starts a field for an arbitrary tag. A non-empty name seeds the
// `name` pair attribute.
func NewField(tag, name string) *FieldBuilder {
	b := &FieldBuilder{
		tag:   tag,
		name:  name,
		kind:  KindText,
		attrs: attrs.NewSet(),
	}
	if name != "" {
		b.attrs.Insert(attrs.Pair("name", name))
	}
	return b
}

// Input starts an `<input>` field.
func Input(name string) *FieldBuilder {
	return NewField("input", name)
}

// Textarea starts a `<textarea>` field.
func Textarea(name string) *FieldBuilder {
	return NewField("textarea", name)
}

// FormField returns the wrapper used to open a `<form>` element.
func FormField(name string) *FieldBuilder {
	return NewField("form", name)
}

// SubmitField returns the default submit button.
func SubmitField() *FieldBuilder {
	return Input("submit").
		Attr("type", "submit").
		Attr("value", "Submit")
}

// Replace switches the builder's attribute set to replace mode. Only later
// inserts are affected.
func (b *FieldBuilder) Replace() *FieldBuilder {
	b.attrs.Replace()
	return b
}

// Append switches the attribute set back to append mode.
func (b *FieldBuilder) Append() *FieldBuilder {
	b.attrs.Append()
	return b
}

// Attr inserts a pair attribute using the current mode.
func (b *FieldBuilder) Attr(name, value string) *FieldBuilder {
	b.attrs.Insert(attrs.Pair(name, value))
	return b
}

// Single inserts a boolean style attribute.
func (b *FieldBuilder) Single(value string) *FieldBuilder {
	b.attrs.Insert(attrs.Single(value))
	return b
}

// Attrs inserts prebuilt attributes in order.
func (b *FieldBuilder) Attrs(list ...attrs.Attribute) *FieldBuilder {
	for _, attr := range list {
		b.attrs.Insert(attr)
	}
	return b
}

// Value inserts the `value` attribute.
func (b *FieldBuilder) Value(v string) *FieldBuilder {
	return b.Attr("value", v)
}

// Values inserts one `value` attribute per argument; with append mode they
// merge into a space separated list.
func (b *FieldBuilder) Values(vs ...string) *FieldBuilder {
	for _, v := range vs {
		b.Value(v)
	}
	return b
}

// Class inserts a `class` attribute.
func (b *FieldBuilder) Class(v string) *FieldBuilder {
	return b.Attr("class", v)
}

// Type sets the `type` attribute, replacing any previous one regardless of
// mode.
func (b *FieldBuilder) Type(t string) *FieldBuilder {
	b.attrs.RemovePair("type")
	return b.Attr("type", t)
}

// Required marks the field as required and clears the optional flag.
func (b *FieldBuilder) Required() *FieldBuilder {
	b.attrs.Insert(attrs.Single("required"))
	b.optional = false
	return b
}

// Optional removes `required` and lets absent values skip every rule.
func (b *FieldBuilder) Optional() *FieldBuilder {
	b.attrs.RemoveSingle("required")
	b.optional = true
	return b
}

// Kind declares the value kind.
func (b *FieldBuilder) Kind(kind ValueKind) *FieldBuilder {
	b.kind = kind
	return b
}

// Rule attaches rules in order.
func (b *FieldBuilder) Rule(rs ...rules.Rule) *FieldBuilder {
	b.rules = append(b.rules, rs...)
	return b
}

// MinLength is shorthand for Rule(rules.MinLength(n)).
func (b *FieldBuilder) MinLength(n uint64) *FieldBuilder {
	return b.Rule(rules.MinLength(n))
}

// MaxLength is shorthand for Rule(rules.MaxLength(n)).
func (b *FieldBuilder) MaxLength(n uint64) *FieldBuilder {
	return b.Rule(rules.MaxLength(n))
}

// Email is shorthand for Rule(rules.Email()).
func (b *FieldBuilder) Email() *FieldBuilder {
	return b.Rule(rules.Email())
}

// Phone is shorthand for Rule(rules.Phone()).
func (b *FieldBuilder) Phone() *FieldBuilder {
	return b.Rule(rules.Phone())
}

// Matches is shorthand for Rule(rules.FieldMatch(target)).
func (b *FieldBuilder) Matches(target string) *FieldBuilder {
	return b.Rule(rules.FieldMatch(target))
}

// Match declares an inline pattern. It is registered under a generated id of
// the form `<name>_pattern_<n>` and referenced by a Pattern rule.
func (b *FieldBuilder) Match(pattern string) *FieldBuilder {
	id := fmt.Sprintf("%s_pattern_%d", b.name, len(b.inline)+1)
	b.inline = append(b.inline, InlinePattern{ID: id, Pattern: pattern})
	return b.Rule(rules.Pattern(id))
}

// Finish returns the immutable field.
func (b *FieldBuilder) Finish() Field {
	return Field{
		tag:      b.tag,
		name:     b.name,
		kind:     b.kind,
		attrs:    b.attrs.Clone(),
		rules:    append([]rules.Rule(nil), b.rules...),
		optional: b.optional,
		inline:   append([]InlinePattern(nil), b.inline...),
	}
}
