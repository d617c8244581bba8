// Package reflectschema derives form schemas from tagged Go structs.
//
// Supported struct tags:
//   - `form:"name"` overrides the field name, `form:"-"` skips the field
//   - `validate:"min_length=3,max_length=16,email,optional,compiled_regex=id"`
//   - `validate_match:"Password"` adds a field match rule
//   - `html:"class=input,placeholder=Name,required"` adds attributes
//   - `html_input_type:"password"` sets the input type
//   - `html_tag:"textarea"` changes the element
//
// `regex=<pattern>` must be the last validate option because patterns may
// contain commas. Pointer fields are optional. Structs may declare shared
// regexes through a `Regexes() map[string]string` method.
package reflectschema

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-webforms/pkg/rules"
	"github.com/goliatone/go-webforms/pkg/schema"
)

var (
	// ErrNotStruct is returned when the input is not a struct or a pointer to
	// one.
	ErrNotStruct = errors.New("reflectschema: value must be a struct or pointer to struct")
	// ErrUnsupportedType is returned for field types with no value kind.
	ErrUnsupportedType = errors.New("reflectschema: unsupported field type")
	// ErrInvalidTag is returned for malformed tag options.
	ErrInvalidTag = errors.New("reflectschema: invalid tag")
)

// RegexProvider declares regexes referenced through `compiled_regex`.
type RegexProvider interface {
	Regexes() map[string]string
}

// Option customises derivation.
type Option func(*config)

type config struct {
	name    string
	compile []schema.Option
}

// WithName overrides the schema name. The default is the lowercased type
// name.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithCompilerOptions forwards options to the schema compiler.
func WithCompilerOptions(opts ...schema.Option) Option {
	return func(c *config) {
		c.compile = append(c.compile, opts...)
	}
}

// Compile derives and compiles the schema for v.
func Compile(v any, opts ...Option) (*schema.Schema, error) {
	c, err := Compiler(v, opts...)
	if err != nil {
		return nil, err
	}
	return c.Compile()
}

// Compiler derives a schema compiler for v without compiling it, so callers
// can add fields or messages first.
func Compiler(v any, opts ...Option) (*schema.Compiler, error) {
	rv, rt, err := structOf(v)
	if err != nil {
		return nil, err
	}

	cfg := config{name: strings.ToLower(rt.Name())}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	c := schema.New(cfg.name, cfg.compile...)
	regexes := regexesOf(rv)
	ids := make([]string, 0, len(regexes))
	for id := range regexes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		c.Regex(id, regexes[id])
	}

	names := fieldNames(rt)
	var errs []error
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name, ok := names[sf.Name]
		if !ok {
			continue
		}
		b, err := builderFor(sf, name, names)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.Field(b)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Record reads the current field values of v. Nil pointers are absent.
func Record(v any) (schema.Values, error) {
	rv, rt, err := structOf(v)
	if err != nil {
		return nil, err
	}

	names := fieldNames(rt)
	out := make(schema.Values, len(names))
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name, ok := names[sf.Name]
		if !ok {
			continue
		}
		value, err := valueOf(rv.Field(i))
		if err != nil {
			return nil, fmt.Errorf("reflectschema: field %s: %w", sf.Name, err)
		}
		out[name] = value
	}
	return out, nil
}

func structOf(v any) (reflect.Value, reflect.Type, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv = reflect.Zero(rv.Type().Elem())
			continue
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, nil, ErrNotStruct
	}
	return rv, rv.Type(), nil
}

func regexesOf(rv reflect.Value) map[string]string {
	if provider, ok := rv.Interface().(RegexProvider); ok {
		return provider.Regexes()
	}
	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	if provider, ok := ptr.Interface().(RegexProvider); ok {
		return provider.Regexes()
	}
	return nil
}

// fieldNames maps exported Go field names to form names.
func fieldNames(rt reflect.Type) map[string]string {
	names := make(map[string]string, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("form")
		if tag == "-" {
			continue
		}
		name := tag
		if idx := strings.Index(tag, ","); idx != -1 {
			name = tag[:idx]
		}
		if name == "" {
			name = strings.ToLower(sf.Name)
		}
		names[sf.Name] = name
	}
	return names
}

func builderFor(sf reflect.StructField, name string, names map[string]string) (*schema.FieldBuilder, error) {
	ft := sf.Type
	optional := false
	if ft.Kind() == reflect.Ptr {
		optional = true
		ft = ft.Elem()
	}
	kind, err := kindOf(ft)
	if err != nil {
		return nil, fmt.Errorf("reflectschema: field %s: %w", sf.Name, err)
	}

	tag := strings.TrimSpace(sf.Tag.Get("html_tag"))
	if tag == "" {
		tag = "input"
	}
	b := schema.NewField(tag, name).Kind(kind)
	if t := strings.TrimSpace(sf.Tag.Get("html_input_type")); t != "" {
		b.Type(t)
	}
	for _, opt := range splitOptions(sf.Tag.Get("html")) {
		key, value, pair := strings.Cut(opt, "=")
		if pair {
			b.Attr(strings.TrimSpace(key), strings.TrimSpace(value))
			continue
		}
		b.Single(opt)
	}

	var errs []error
	validate, pattern, hasPattern := cutRegex(sf.Tag.Get("validate"))
	for _, opt := range splitOptions(validate) {
		key, value, _ := strings.Cut(opt, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "optional":
			optional = true
		case "email":
			b.Email()
		case "phone":
			b.Phone()
		case "min_length", "max_length":
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: field %s: %s needs a length", ErrInvalidTag, sf.Name, key))
				continue
			}
			if key == "min_length" {
				b.MinLength(n)
			} else {
				b.MaxLength(n)
			}
		case "min_value", "max_value":
			bound, err := parseBound(kind, value)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: field %s: %s: %v", ErrInvalidTag, sf.Name, key, err))
				continue
			}
			if key == "min_value" {
				b.Rule(rules.MinValue(bound))
			} else {
				b.Rule(rules.MaxValue(bound))
			}
		case "compiled_regex":
			b.Rule(rules.Pattern(value))
		default:
			errs = append(errs, fmt.Errorf("%w: field %s: unknown validate option %q", ErrInvalidTag, sf.Name, opt))
		}
	}

	if hasPattern {
		b.Match(pattern)
	}
	if target := strings.TrimSpace(sf.Tag.Get("validate_match")); target != "" {
		if mapped, ok := names[target]; ok {
			target = mapped
		}
		b.Matches(target)
	}
	if optional {
		b.Optional()
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b, nil
}

// cutRegex splits a trailing `regex=` option from a validate tag.
func cutRegex(tag string) (string, string, bool) {
	idx := strings.Index(tag, "regex=")
	for idx > 0 && tag[idx-1] != ',' && tag[idx-1] != ' ' {
		next := strings.Index(tag[idx+1:], "regex=")
		if next == -1 {
			return tag, "", false
		}
		idx += next + 1
	}
	if idx == -1 {
		return tag, "", false
	}
	return strings.TrimRight(tag[:idx], ", "), tag[idx+len("regex="):], true
}

func splitOptions(tag string) []string {
	var out []string
	for _, part := range strings.Split(tag, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func kindOf(t reflect.Type) (schema.ValueKind, error) {
	switch t.Kind() {
	case reflect.String, reflect.Bool:
		return schema.KindText, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return schema.KindInteger, nil
	case reflect.Float32, reflect.Float64:
		return schema.KindFloat, nil
	default:
		return 0, fmt.Errorf("%w %s", ErrUnsupportedType, t)
	}
}

func parseBound(kind schema.ValueKind, raw string) (rules.Number, error) {
	switch kind {
	case schema.KindInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return rules.Number{}, fmt.Errorf("%q is not an integer", raw)
		}
		return rules.Int(n), nil
	case schema.KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rules.Number{}, fmt.Errorf("%q is not a number", raw)
		}
		return rules.Float(f), nil
	default:
		// Text fields keep an integer bound so the compiler reports the
		// kind mismatch.
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return rules.Number{}, fmt.Errorf("%q is not a number", raw)
		}
		return rules.Int(n), nil
	}
}

func valueOf(fv reflect.Value) (schema.Value, error) {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			return schema.Absent(), nil
		}
		fv = fv.Elem()
	}
	switch fv.Kind() {
	case reflect.String:
		return schema.Text(fv.String()), nil
	case reflect.Bool:
		return schema.Text(strconv.FormatBool(fv.Bool())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return schema.Int(fv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := fv.Uint()
		if u > math.MaxInt64 {
			return schema.Value{}, fmt.Errorf("value %d overflows int64", u)
		}
		return schema.Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return schema.Float(fv.Float()), nil
	default:
		return schema.Value{}, fmt.Errorf("%w %s", ErrUnsupportedType, fv.Type())
	}
}
