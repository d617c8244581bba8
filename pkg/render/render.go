// Package render turns schema fields into HTML tags.
//
// Rendering is a pure function of a field and an optional override set: base
// attributes whose identity the overrides touch are dropped, every other base
// attribute is written unchanged, then the overrides follow. Fields are never
// mutated, so the same schema can be rendered from many goroutines.
package render

import (
	"strings"

	"github.com/goliatone/go-webforms/pkg/attrs"
	"github.com/goliatone/go-webforms/pkg/regex"
	"github.com/goliatone/go-webforms/pkg/schema"
)

// Field renders field as a single self-contained tag. overrides may be nil.
func Field(field schema.Field, overrides *attrs.Set) string {
	var b strings.Builder
	writeField(&b, field, overrides)
	return b.String()
}

func writeField(b *strings.Builder, field schema.Field, overrides *attrs.Set) {
	b.WriteByte('<')
	b.WriteString(field.Tag())
	for _, attr := range field.Attributes() {
		if overrides.Contains(attr) {
			continue
		}
		b.WriteString(attr.Render())
	}
	b.WriteString(overrides.Render())
	b.WriteByte('>')
}

// Close returns the closing tag for a wrapper field.
func Close(field schema.Field) string {
	return "</" + field.Tag() + ">"
}

// ConstraintAttributes returns the HTML constraint attributes implied by the
// field's rules.
func ConstraintAttributes(field schema.Field, reg *regex.Registry) []attrs.Attribute {
	return schema.ConstraintAttributes(field, reg)
}

// ConstraintOverrides wraps ConstraintAttributes in an override set so a
// field can be rendered with constraints without recompiling the schema.
// Attributes the field already carries are left out.
func ConstraintOverrides(field schema.Field, reg *regex.Registry) *attrs.Set {
	set := attrs.NewSet()
	for _, attr := range ConstraintAttributes(field, reg) {
		if field.HasAttr(attr) {
			continue
		}
		set.Insert(attr)
	}
	return set
}
