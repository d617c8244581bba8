package validation

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-webforms/pkg/messages"
	"github.com/goliatone/go-webforms/pkg/rules"
	"github.com/goliatone/go-webforms/pkg/schema"
)

// Option customises a Validator.
type Option func(*Validator)

// WithoutNormalization counts raw runes instead of NFC normalised ones.
func WithoutNormalization() Option {
	return func(v *Validator) {
		v.normalize = false
	}
}

// WithMessages replaces the schema's message table.
func WithMessages(table *messages.Table) Option {
	return func(v *Validator) {
		if table != nil {
			v.messages = table
		}
	}
}

// Validator evaluates a compiled schema against values. It holds no mutable
// state and is safe for concurrent use.
type Validator struct {
	schema    *schema.Schema
	messages  *messages.Table
	normalize bool
}

// New returns a validator for s.
func New(s *schema.Schema, opts ...Option) *Validator {
	v := &Validator{
		schema:    s,
		messages:  s.Messages(),
		normalize: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Schema returns the schema being validated.
func (v *Validator) Schema() *schema.Schema { return v.schema }

// Validate checks every field of the schema against record. Fields missing
// from the record are treated as absent.
func (v *Validator) Validate(record schema.Record) Report {
	report := Report{Schema: v.schema.Name()}
	if record == nil {
		record = schema.Values{}
	}
	for _, field := range v.schema.Fields() {
		value, _ := record.FieldValue(field.Name())
		report.Errors = append(report.Errors, v.Field(field, value, record)...)
	}
	return report
}

// Value validates a single named field in isolation. FieldMatch rules are
// not applicable without a record and are skipped.
func (v *Validator) Value(name string, value schema.Value) ([]Error, error) {
	field, ok := v.schema.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", schema.ErrUnknownField, name)
	}
	return v.Field(field, value, nil), nil
}

// Field evaluates every rule of field in declaration order and returns all
// failures. A nil record skips FieldMatch rules.
func (v *Validator) Field(field schema.Field, value schema.Value, record schema.Record) []Error {
	if field.Optional() && value.Empty() {
		return nil
	}

	value, ok := coerce(field.Kind(), value)
	if !ok {
		return []Error{v.finish(InvalidValue(field.Name()))}
	}
	// Blank numeric text only turns absent once parsed.
	if !value.Present() {
		if field.Optional() {
			return nil
		}
		value = schema.ZeroValue(field.Kind())
	}

	var errs []Error
	for _, rule := range field.Rules() {
		if err, failed := v.check(field, rule, value, record); failed {
			errs = append(errs, v.finish(err))
		}
	}
	return errs
}

func (v *Validator) check(field schema.Field, rule rules.Rule, value schema.Value, record schema.Record) (Error, bool) {
	name := field.Name()
	switch rule.Kind() {
	case rules.KindMinLength:
		if uint64(v.length(value.TextValue())) < rule.Length() {
			return TooShort(name, rule.Length()), true
		}
	case rules.KindMaxLength:
		if uint64(v.length(value.TextValue())) > rule.Length() {
			return TooLong(name, rule.Length()), true
		}
	case rules.KindMinValue:
		if n, ok := value.Number(); ok && n.Compare(rule.Bound()) < 0 {
			return TooSmall(name, rule.Bound()), true
		}
	case rules.KindMaxValue:
		if n, ok := value.Number(); ok && n.Compare(rule.Bound()) > 0 {
			return TooLarge(name, rule.Bound()), true
		}
	case rules.KindPattern:
		if !v.schema.Registry().Match(rule.RegexID(), value.TextValue()) {
			return InvalidPattern(name, rule.RegexID()), true
		}
	case rules.KindEmail:
		if !v.schema.Registry().Match(rule.RegexID(), value.TextValue()) {
			return InvalidEmail(name), true
		}
	case rules.KindPhone:
		if !v.schema.Registry().Match(rule.RegexID(), value.TextValue()) {
			return InvalidPhone(name), true
		}
	case rules.KindFieldMatch:
		if record == nil {
			return Error{}, false
		}
		other, _ := record.FieldValue(rule.Target())
		other, ok := coerce(field.Kind(), other)
		if !ok || !other.Equal(value) {
			return FieldMismatch(name, rule.Target()), true
		}
	}
	return Error{}, false
}

// finish fills the human readable message.
func (v *Validator) finish(err Error) Error {
	if err.Kind == KindInvalidValue {
		err.Message = fmt.Sprintf("%s is not a valid value", err.Field)
		return err
	}
	params := messages.Params{Field: err.Field, Target: err.Target}
	switch err.Kind {
	case KindTooShort:
		params.Min = strconv.FormatUint(err.Length, 10)
	case KindTooLong:
		params.Max = strconv.FormatUint(err.Length, 10)
	case KindTooSmall:
		params.Min = err.Bound.String()
	case KindTooLarge:
		params.Max = err.Bound.String()
	}
	err.Message = v.messages.Format(err.Rule, params)
	return err
}

func (v *Validator) length(s string) int {
	if v.normalize {
		s = norm.NFC.String(s)
	}
	return utf8.RuneCountInString(s)
}

// coerce brings value to kind. Text is parsed for numeric fields so records
// built from raw input work; blank text becomes absent.
func coerce(kind schema.ValueKind, value schema.Value) (schema.Value, bool) {
	if !value.Present() || value.Kind() == kind {
		return value, true
	}
	switch {
	case kind == schema.KindText:
		return schema.Text(value.String()), true
	case kind == schema.KindFloat && value.Kind() == schema.KindInteger:
		n, _ := value.Number()
		return schema.Float(n.Float64()), true
	default:
		parsed, err := schema.ParseValue(kind, value.TextValue())
		if err != nil {
			return schema.Value{}, false
		}
		return parsed, true
	}
}
