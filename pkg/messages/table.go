// Package messages renders the human readable text attached to validation
// errors. Each rule kind has a default pongo2 template; schemas can override
// any of them. Lookups that miss fall back to the default silently.
//
// Messages are plain text: templates render without HTML escaping and callers
// escape them for whatever output they write to.
package messages

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-webforms/pkg/rules"
)

// ErrInvalidTemplate wraps pongo2 parse errors for overridden messages.
var ErrInvalidTemplate = errors.New("messages: invalid template")

var (
	// messageSet is kept apart from pongo2.DefaultSet; it cannot load files.
	messageSet = pongo2.NewSet("webforms-messages", pongo2.NewFSLoader(embed.FS{}))
	setMu      sync.Mutex
)

func compile(source string) (*pongo2.Template, error) {
	setMu.Lock()
	defer setMu.Unlock()
	return messageSet.FromString("{% autoescape off %}" + source + "{% endautoescape %}")
}

var defaultTemplates = map[rules.Kind]string{
	rules.KindMinLength:  "{{ field }} must be at least {{ min }} characters long",
	rules.KindMaxLength:  "{{ field }} must be at most {{ max }} characters long",
	rules.KindMinValue:   "{{ field }} must be at least {{ min }}",
	rules.KindMaxValue:   "{{ field }} must be at most {{ max }}",
	rules.KindPattern:    "{{ field }} has an invalid format",
	rules.KindEmail:      "{{ field }} must be a valid email address",
	rules.KindPhone:      "{{ field }} must be a valid phone number",
	rules.KindFieldMatch: "{{ field }} must match {{ target }}",
}

// Params are the values exposed to a message template.
type Params struct {
	Field  string
	Target string
	Min    string
	Max    string
}

func (p Params) context() pongo2.Context {
	return pongo2.Context{
		"field":  p.Field,
		"target": p.Target,
		"min":    p.Min,
		"max":    p.Max,
	}
}

// Default returns the built-in template source for kind.
func Default(kind rules.Kind) string {
	return defaultTemplates[kind]
}

// Table is a compiled set of templates. It is immutable once built and safe
// for concurrent use.
type Table struct {
	templates map[rules.Kind]*pongo2.Template
	sources   map[rules.Kind]string
}

// New compiles the default templates plus overrides. Blank overrides are
// ignored so they fall back to the default.
func New(overrides map[rules.Kind]string) (*Table, error) {
	table := &Table{
		templates: make(map[rules.Kind]*pongo2.Template, len(defaultTemplates)),
		sources:   make(map[rules.Kind]string, len(defaultTemplates)),
	}

	for kind, source := range defaultTemplates {
		tpl, err := compile(source)
		if err != nil {
			return nil, fmt.Errorf("messages: default template %q: %w", kind, err)
		}
		table.templates[kind] = tpl
		table.sources[kind] = source
	}

	for kind, source := range overrides {
		if strings.TrimSpace(source) == "" {
			continue
		}
		tpl, err := compile(source)
		if err != nil {
			return nil, fmt.Errorf("%w for %q: %v", ErrInvalidTemplate, kind, err)
		}
		table.templates[kind] = tpl
		table.sources[kind] = source
	}

	return table, nil
}

// Validate reports whether every override parses.
func Validate(overrides map[rules.Kind]string) error {
	_, err := New(overrides)
	return err
}

// Source returns the template text in effect for kind.
func (t *Table) Source(kind rules.Kind) string {
	if t == nil {
		return Default(kind)
	}
	if source, ok := t.sources[kind]; ok {
		return source
	}
	return Default(kind)
}

// Format renders the message for kind. Rendering failures degrade to the raw
// template text rather than losing the message.
func (t *Table) Format(kind rules.Kind, params Params) string {
	if t == nil {
		return fallback(kind, params)
	}
	tpl, ok := t.templates[kind]
	if !ok {
		return fallback(kind, params)
	}
	out, err := tpl.Execute(params.context())
	if err != nil {
		return strings.TrimSpace(t.Source(kind))
	}
	return strings.TrimSpace(out)
}

func fallback(kind rules.Kind, params Params) string {
	if params.Field == "" {
		return string(kind)
	}
	return params.Field + ": " + string(kind)
}
