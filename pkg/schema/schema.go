package schema

import (
	"github.com/goliatone/go-webforms/pkg/messages"
	"github.com/goliatone/go-webforms/pkg/regex"
	"github.com/goliatone/go-webforms/pkg/rules"
)

// Schema is a compiled, immutable form description: ordered fields, the
// frozen regex registry and the message table. It is safe for concurrent use.
type Schema struct {
	name      string
	fields    []Field
	index     map[string]int
	registry  *regex.Registry
	messages  *messages.Table
	overrides map[rules.Kind]string
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	pos, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[pos], true
}

// Registry returns the frozen pattern registry.
func (s *Schema) Registry() *regex.Registry { return s.registry }

// Messages returns the compiled message table.
func (s *Schema) Messages() *messages.Table { return s.messages }

// MessageOverrides returns a copy of the per-schema message templates.
func (s *Schema) MessageOverrides() map[rules.Kind]string {
	out := make(map[rules.Kind]string, len(s.overrides))
	for kind, tpl := range s.overrides {
		out[kind] = tpl
	}
	return out
}
