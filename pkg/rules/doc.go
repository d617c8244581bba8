// Package rules defines the typed constraints attached to a form field.
//
// A Rule is a small immutable value: length bounds, numeric bounds carrying
// either an integer or a float, a reference to a pattern in the regex
// registry (Pattern, Email, Phone) or the name of a sibling field that must
// hold the same value (FieldMatch). Rules never evaluate themselves; the
// validation package interprets them against a compiled schema.
package rules
