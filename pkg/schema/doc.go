// Package schema describes form fields and compiles them into an immutable
// Schema.
//
// Fields are declared with FieldBuilder (tag, attributes, value kind, rules)
// and handed to a Compiler together with named regexes and message
// overrides. Compile checks every declaration once: unknown pattern ids,
// FieldMatch targets that do not exist and rules that do not fit the field's
// value kind are construction errors. A compiled Schema is read-only and can
// be shared between validators and renderers without locking.
package schema
