package schemafile

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/goliatone/go-webforms/pkg/attrs"
	"github.com/goliatone/go-webforms/pkg/rules"
	"github.com/goliatone/go-webforms/pkg/schema"
)

var (
	// ErrUnknownRuleKind is returned for rule kinds the rules package does not
	// define.
	ErrUnknownRuleKind = errors.New("schemafile: unknown rule kind")
	// ErrInvalidRule is returned when a rule lacks the key its kind needs.
	ErrInvalidRule = errors.New("schemafile: invalid rule")
)

// Compiler converts f into a schema.Compiler. Conversion problems
// (unknown kinds, missing rule arguments) are reported together.
func (f FormSpec) Compiler(opts ...schema.Option) (*schema.Compiler, error) {
	if f.Constraints {
		opts = append(opts, schema.WithConstraintAttributes())
	}
	c := schema.New(strings.TrimSpace(f.Name), opts...)

	ids := make([]string, 0, len(f.Regex))
	for id := range f.Regex {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		c.Regex(id, f.Regex[id])
	}

	var errs []error
	for raw, tpl := range f.Messages {
		kind, ok := rules.ParseKind(raw)
		if !ok {
			errs = append(errs, fmt.Errorf("%w %q in messages", ErrUnknownRuleKind, raw))
			continue
		}
		c.Message(kind, tpl)
	}

	for _, spec := range f.Fields {
		builder, err := spec.Builder()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.Field(builder)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Builder converts the field spec into a schema.FieldBuilder.
func (f FieldSpec) Builder() (*schema.FieldBuilder, error) {
	kind, ok := schema.ParseValueKind(f.Kind)
	if !ok {
		return nil, fmt.Errorf("schemafile: field %q: unknown kind %q", f.Name, f.Kind)
	}

	tag := strings.TrimSpace(f.Tag)
	if tag == "" {
		tag = "input"
	}
	b := schema.NewField(tag, strings.TrimSpace(f.Name)).Kind(kind)

	if f.Type != "" {
		b.Type(f.Type)
	}
	if f.Class != "" {
		b.Class(f.Class)
	}
	for _, attr := range f.Attrs {
		if attr.Replace {
			b.Replace()
		}
		if strings.TrimSpace(attr.Name) == "" {
			b.Attrs(attrs.Single(attr.Value))
		} else {
			b.Attr(attr.Name, attr.Value)
		}
		if attr.Replace {
			b.Append()
		}
	}

	var errs []error
	for i, spec := range f.Rules {
		rule, inline, err := spec.rule(kind)
		if err != nil {
			errs = append(errs, fmt.Errorf("schemafile: field %q rule #%d: %w", f.Name, i+1, err))
			continue
		}
		if inline != "" {
			b.Match(inline)
			continue
		}
		b.Rule(rule)
	}

	if f.Required {
		b.Required()
	}
	if f.Optional {
		b.Optional()
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b, nil
}

func (r RuleSpec) rule(kind schema.ValueKind) (rules.Rule, string, error) {
	ruleKind, ok := rules.ParseKind(r.Kind)
	if !ok {
		return rules.Rule{}, "", fmt.Errorf("%w %q", ErrUnknownRuleKind, r.Kind)
	}

	switch ruleKind {
	case rules.KindMinLength, rules.KindMaxLength:
		if r.Length == nil {
			return rules.Rule{}, "", fmt.Errorf("%w: %s needs length", ErrInvalidRule, ruleKind)
		}
		if ruleKind == rules.KindMinLength {
			return rules.MinLength(*r.Length), "", nil
		}
		return rules.MaxLength(*r.Length), "", nil
	case rules.KindMinValue, rules.KindMaxValue:
		bound, err := numberFor(kind, r.Value)
		if err != nil {
			return rules.Rule{}, "", fmt.Errorf("%w: %s: %v", ErrInvalidRule, ruleKind, err)
		}
		if ruleKind == rules.KindMinValue {
			return rules.MinValue(bound), "", nil
		}
		return rules.MaxValue(bound), "", nil
	case rules.KindPattern:
		switch {
		case r.Pattern != "" && r.Regex != "":
			return rules.Rule{}, "", fmt.Errorf("%w: pattern takes either regex or pattern", ErrInvalidRule)
		case r.Pattern != "":
			return rules.Rule{}, r.Pattern, nil
		case r.Regex != "":
			return rules.Pattern(r.Regex), "", nil
		default:
			return rules.Rule{}, "", fmt.Errorf("%w: pattern needs regex or pattern", ErrInvalidRule)
		}
	case rules.KindEmail:
		return rules.Email(), "", nil
	case rules.KindPhone:
		return rules.Phone(), "", nil
	case rules.KindFieldMatch:
		if strings.TrimSpace(r.Target) == "" {
			return rules.Rule{}, "", fmt.Errorf("%w: field_match needs target", ErrInvalidRule)
		}
		return rules.FieldMatch(strings.TrimSpace(r.Target)), "", nil
	}
	return rules.Rule{}, "", fmt.Errorf("%w %q", ErrUnknownRuleKind, r.Kind)
}

// numberFor converts a decoded bound into the number kind the field needs.
// Text fields get an integer bound so the compiler reports the kind
// mismatch.
func numberFor(kind schema.ValueKind, raw any) (rules.Number, error) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return rules.Number{}, errors.New("missing value")
	case int:
		if kind != schema.KindFloat {
			return rules.Int(int64(v)), nil
		}
		f = float64(v)
	case int64:
		if kind != schema.KindFloat {
			return rules.Int(v), nil
		}
		f = float64(v)
	case uint64:
		if kind != schema.KindFloat && v <= math.MaxInt64 {
			return rules.Int(int64(v)), nil
		}
		f = float64(v)
	case float64:
		f = v
	default:
		return rules.Number{}, fmt.Errorf("value %v is not a number", raw)
	}

	if kind == schema.KindFloat {
		return rules.Float(f), nil
	}
	n, ok := rules.IntFromFloat(f)
	if !ok {
		return rules.Number{}, fmt.Errorf("value %v is not an integer in the int64 range", raw)
	}
	return n, nil
}
