// Package validation evaluates compiled schemas against record values.
//
// Every rule of every field runs, in declaration order, and every failure is
// collected; nothing short-circuits. Optional fields with an absent or empty
// value skip all of their rules. FieldMatch rules read the sibling value from
// the record, so they only apply when a record is supplied.
package validation
