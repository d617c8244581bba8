// Package openapi derives form schemas from OpenAPI 3 request bodies.
//
// Documents are loaded with kin-openapi. The request body of the selected
// operation (application/json first, then form encodings) becomes one form:
// each scalar property is a field, the `required` list drives optionality and
// the usual JSON Schema keywords become rules.
//
// Extensions:
//   - `x-webforms-match: <property>` adds a field match rule
//   - `x-webforms-html: {class: input, autofocus: true}` adds attributes
//   - `x-webforms-tag: textarea` changes the element
//   - `x-webforms-messages: {min_length: "..."}` on the operation overrides
//     messages
package openapi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-webforms/pkg/rules"
	"github.com/goliatone/go-webforms/pkg/schema"
)

const (
	extensionNamespace = "x-webforms"
	matchExtension     = extensionNamespace + "-match"
	htmlExtension      = extensionNamespace + "-html"
	tagExtension       = extensionNamespace + "-tag"
	messagesExtension  = extensionNamespace + "-messages"
)

var (
	// ErrOperationNotFound is returned when no operation has the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no usable request
	// body schema.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
	// ErrInvalidBound is returned when a minimum or maximum does not fit the
	// property type.
	ErrInvalidBound = errors.New("openapi: invalid bound")
)

var preferredMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Option customises conversion.
type Option func(*config)

type config struct {
	logger   zerolog.Logger
	validate bool
	external bool
	compile  []schema.Option
}

// WithLogger routes conversion diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithDocumentValidation validates the whole document before conversion.
func WithDocumentValidation(enabled bool) Option {
	return func(c *config) {
		c.validate = enabled
	}
}

// WithExternalRefs allows $ref pointers to other files or URLs.
func WithExternalRefs(enabled bool) Option {
	return func(c *config) {
		c.external = enabled
	}
}

// WithCompilerOptions forwards options to the schema compiler.
func WithCompilerOptions(opts ...schema.Option) Option {
	return func(c *config) {
		c.compile = append(c.compile, opts...)
	}
}

func newConfig(opts []Option) config {
	cfg := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// FromDocument loads raw and returns a compiler for the request body of
// operationID. Operations without an id are addressed as `method:path`, for
// example `post:/users`.
func FromDocument(ctx context.Context, raw []byte, operationID string, opts ...Option) (*schema.Compiler, error) {
	cfg := newConfig(opts)
	spec, err := load(ctx, raw, cfg)
	if err != nil {
		return nil, err
	}

	ops := collectOperations(spec)
	op, ok := ops[operationID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	return cfg.convert(operationID, op)
}

// FromFile reads the document at path and calls FromDocument.
func FromFile(ctx context.Context, path, operationID string, opts ...Option) (*schema.Compiler, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return FromDocument(ctx, raw, operationID, opts...)
}

// Operations lists the ids of operations that declare a request body,
// sorted.
func Operations(ctx context.Context, raw []byte, opts ...Option) ([]string, error) {
	spec, err := load(ctx, raw, newConfig(opts))
	if err != nil {
		return nil, err
	}
	var ids []string
	for id, op := range collectOperations(spec) {
		if requestSchema(op) != nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func load(ctx context.Context, raw []byte, cfg config) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.external,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return spec, nil
}

func collectOperations(spec *openapi3.T) map[string]*openapi3.Operation {
	ops := make(map[string]*openapi3.Operation)
	if spec.Paths == nil {
		return ops
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			ops[id] = op
		}
	}
	return ops
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range preferredMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	types := make([]string, 0, len(content))
	for mediaType := range content {
		types = append(types, mediaType)
	}
	sort.Strings(types)
	for _, mediaType := range types {
		if mt := content[mediaType]; mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func (cfg config) convert(operationID string, op *openapi3.Operation) (*schema.Compiler, error) {
	body := requestSchema(op)
	if body == nil || len(body.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	c := schema.New(operationID, append([]schema.Option{schema.WithLogger(cfg.logger)}, cfg.compile...)...)

	var errs []error
	if raw, ok := op.Extensions[messagesExtension].(map[string]any); ok {
		for key, value := range raw {
			kind, ok := rules.ParseKind(key)
			tpl, isString := value.(string)
			if !ok || !isString {
				errs = append(errs, fmt.Errorf("openapi: %s: invalid message override %q", messagesExtension, key))
				continue
			}
			c.Message(kind, tpl)
		}
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if prop.ReadOnly {
			cfg.logger.Debug().Str("operation", operationID).Str("property", name).Msg("skipping read-only property")
			continue
		}
		b, ok, err := fieldFor(name, prop)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			cfg.logger.Warn().Str("operation", operationID).Str("property", name).Str("type", typeOf(prop)).Msg("skipping unsupported property")
			continue
		}
		if required[name] {
			b.Required()
		} else {
			b.Optional()
		}
		c.Field(b)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func typeOf(prop *openapi3.Schema) string {
	if prop.Type == nil {
		return ""
	}
	values := prop.Type.Slice()
	for _, v := range values {
		if v != "null" {
			return v
		}
	}
	return ""
}

func fieldFor(name string, prop *openapi3.Schema) (*schema.FieldBuilder, bool, error) {
	var kind schema.ValueKind
	switch typeOf(prop) {
	case openapi3.TypeString, "":
		kind = schema.KindText
	case openapi3.TypeInteger:
		kind = schema.KindInteger
	case openapi3.TypeNumber:
		kind = schema.KindFloat
	default:
		return nil, false, nil
	}

	tag := "input"
	if raw, ok := prop.Extensions[tagExtension].(string); ok && strings.TrimSpace(raw) != "" {
		tag = strings.TrimSpace(raw)
	}
	b := schema.NewField(tag, name).Kind(kind)

	switch strings.ToLower(prop.Format) {
	case "email":
		b.Type("email").Email()
	case "password":
		b.Type("password")
	case "tel", "phone":
		b.Type("tel").Phone()
	}

	if kind == schema.KindText {
		if prop.MinLength > 0 {
			b.MinLength(prop.MinLength)
		}
		if prop.MaxLength != nil {
			b.MaxLength(*prop.MaxLength)
		}
		if prop.Pattern != "" {
			b.Match(prop.Pattern)
		}
	} else {
		if prop.Min != nil {
			bound, err := boundFor(kind, *prop.Min)
			if err != nil {
				return nil, false, fmt.Errorf("%w: %s minimum: %v", ErrInvalidBound, name, err)
			}
			b.Rule(rules.MinValue(bound))
		}
		if prop.Max != nil {
			bound, err := boundFor(kind, *prop.Max)
			if err != nil {
				return nil, false, fmt.Errorf("%w: %s maximum: %v", ErrInvalidBound, name, err)
			}
			b.Rule(rules.MaxValue(bound))
		}
	}

	if prop.Default != nil {
		b.Attr("value", scalarString(prop.Default))
	}
	if target, ok := prop.Extensions[matchExtension].(string); ok && strings.TrimSpace(target) != "" {
		b.Matches(strings.TrimSpace(target))
	}
	if raw, ok := prop.Extensions[htmlExtension].(map[string]any); ok {
		keys := make([]string, 0, len(raw))
		for key := range raw {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			switch v := raw[key].(type) {
			case bool:
				if v {
					b.Single(key)
				}
			case nil:
				b.Single(key)
			default:
				b.Attr(key, scalarString(v))
			}
		}
	}
	return b, true, nil
}

func boundFor(kind schema.ValueKind, v float64) (rules.Number, error) {
	if kind == schema.KindFloat {
		return rules.Float(v), nil
	}
	n, ok := rules.IntFromFloat(v)
	if !ok {
		return rules.Number{}, fmt.Errorf("%v is not an integer in the int64 range", v)
	}
	return n, nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
