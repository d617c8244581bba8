package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-webforms/pkg/attrs"
	"github.com/goliatone/go-webforms/pkg/messages"
	"github.com/goliatone/go-webforms/pkg/regex"
	"github.com/goliatone/go-webforms/pkg/rules"
)

// Option customises a Compiler.
type Option func(*config)

type config struct {
	logger      zerolog.Logger
	defaults    Defaults
	constraints bool
}

// WithLogger routes compile diagnostics to logger. The default discards them.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithDefaults layers d on top of the defaults already configured.
func WithDefaults(d Defaults) Option {
	return func(c *config) {
		c.defaults = c.defaults.Merge(d)
	}
}

// WithoutDefaults disables every default, built-in ones included.
func WithoutDefaults() Option {
	return func(c *config) {
		c.defaults = nil
	}
}

// WithConstraintAttributes copies the HTML constraint attributes implied by
// each field's rules into its base attributes.
func WithConstraintAttributes() Option {
	return func(c *config) {
		c.constraints = true
	}
}

type regexDecl struct {
	id      string
	pattern string
}

// Compiler collects fields, regexes and message overrides and turns them into
// an immutable Schema. A Compiler has a single owner; it is not safe for
// concurrent use.
type Compiler struct {
	name     string
	cfg      config
	fields   []Field
	regexes  []regexDecl
	messages map[rules.Kind]string
}

// New returns a compiler for the schema called name.
func New(name string, opts ...Option) *Compiler {
	cfg := config{
		logger:   zerolog.Nop(),
		defaults: BuiltinDefaults(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Compiler{
		name:     name,
		cfg:      cfg,
		messages: make(map[rules.Kind]string),
	}
}

// Name returns the schema name.
func (c *Compiler) Name() string { return c.name }

// Regex declares a named pattern usable by Pattern rules.
func (c *Compiler) Regex(id, pattern string) *Compiler {
	c.regexes = append(c.regexes, regexDecl{id: id, pattern: pattern})
	return c
}

// Field finishes and adds builders in order.
func (c *Compiler) Field(builders ...*FieldBuilder) *Compiler {
	for _, b := range builders {
		if b == nil {
			continue
		}
		c.fields = append(c.fields, b.Finish())
	}
	return c
}

// Add appends finished fields in order.
func (c *Compiler) Add(fields ...Field) *Compiler {
	c.fields = append(c.fields, fields...)
	return c
}

// Message overrides the message template for a rule kind.
func (c *Compiler) Message(kind rules.Kind, template string) *Compiler {
	c.messages[kind] = template
	return c
}

// Compile validates every declaration and returns the schema. All problems
// are reported together; no partial schema is returned on error.
func (c *Compiler) Compile() (*Schema, error) {
	var errs []error
	fail := func(field, rule string, err error) {
		errs = append(errs, &CompileError{Schema: c.name, Field: field, Rule: rule, Err: err})
	}

	builder := regex.NewBuilder()
	for _, decl := range c.regexes {
		if err := builder.Register(decl.id, decl.pattern); err != nil {
			fail("", "regex "+decl.id, err)
			continue
		}
		c.cfg.logger.Debug().Str("schema", c.name).Str("regex", decl.id).Msg("registered pattern")
	}

	index := make(map[string]int, len(c.fields))
	for i, field := range c.fields {
		name := strings.TrimSpace(field.name)
		if name == "" {
			fail("", fmt.Sprintf("field #%d", i+1), ErrMissingName)
			continue
		}
		if _, dup := index[name]; dup {
			fail(name, "", ErrDuplicateField)
			continue
		}
		index[name] = i
	}

	// registrations first so pattern references resolve regardless of order
	for _, field := range c.fields {
		for _, inline := range field.inline {
			if err := builder.Register(inline.ID, inline.Pattern); err != nil {
				fail(field.name, "pattern "+inline.ID, err)
			}
		}
		for _, rule := range field.rules {
			var err error
			switch rule.Kind() {
			case rules.KindEmail:
				err = builder.RegisterEmail()
			case rules.KindPhone:
				err = builder.RegisterPhone()
			}
			if err != nil {
				fail(field.name, rule.String(), err)
			}
		}
	}

	for _, field := range c.fields {
		for _, rule := range field.rules {
			if err := c.checkRule(field, rule, builder, index); err != nil {
				fail(field.name, rule.String(), err)
			}
		}
	}

	table, err := messages.New(c.messages)
	if err != nil {
		fail("", "messages", err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	registry := builder.Freeze()

	fields := make([]Field, len(c.fields))
	for i, field := range c.fields {
		fields[i] = c.decorate(field, registry)
	}

	overrides := make(map[rules.Kind]string, len(c.messages))
	for kind, tpl := range c.messages {
		overrides[kind] = tpl
	}

	return &Schema{
		name:      c.name,
		fields:    fields,
		index:     index,
		registry:  registry,
		messages:  table,
		overrides: overrides,
	}, nil
}

func (c *Compiler) checkRule(field Field, rule rules.Rule, builder *regex.Builder, index map[string]int) error {
	kind := field.Kind()
	switch {
	case rule.Kind().Textual():
		if kind != KindText {
			return fmt.Errorf("%w: %s on %s field", ErrRuleKindMismatch, rule.Kind(), kind)
		}
		if rule.Kind() == rules.KindPattern && !builder.Has(rule.RegexID()) {
			return fmt.Errorf("%w: %q", ErrUnknownRegex, rule.RegexID())
		}
	case rule.Kind().Numeric():
		if !kind.Numeric() {
			return fmt.Errorf("%w: %s on %s field", ErrRuleKindMismatch, rule.Kind(), kind)
		}
		bound := rule.Bound()
		if bound.IsZero() || bound.IsInt() != (kind == KindInteger) {
			return fmt.Errorf("%w: %s bound on %s field", ErrNumberKindMismatch, bound.Kind(), kind)
		}
	case rule.Kind() == rules.KindFieldMatch:
		pos, ok := index[rule.Target()]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, rule.Target())
		}
		if other := c.fields[pos].Kind(); other != kind {
			return fmt.Errorf("%w: %s field cannot match %s field %q", ErrRuleKindMismatch, kind, other, rule.Target())
		}
	default:
		return fmt.Errorf("%w: %q", ErrRuleKindMismatch, rule.Kind())
	}
	return nil
}

// decorate applies constraint attributes then defaults, both fill-in only.
func (c *Compiler) decorate(field Field, registry *regex.Registry) Field {
	set := field.Attrs()
	// restore append mode so later overrides merge predictably
	set.Append()

	if c.cfg.constraints {
		for _, attr := range ConstraintAttributes(field, registry) {
			if fillIn(set, attr) {
				c.logAttr("constraint", field, attr)
			}
		}
	}
	for _, attr := range c.cfg.defaults.For(field.Kind(), field.tag) {
		if fillIn(set, attr) {
			c.logAttr("default", field, attr)
		}
	}
	return field.withAttrs(set)
}

func (c *Compiler) logAttr(source string, field Field, attr attrs.Attribute) {
	c.cfg.logger.Debug().
		Str("schema", c.name).
		Str("field", field.name).
		Str("source", source).
		Str("attribute", attr.String()).
		Msg("applied attribute")
}
