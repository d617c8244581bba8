// Package webforms is the entry point for declarative web forms: compile a
// schema once, then validate records against it and render it as HTML.
//
// Schemas come from the fluent builder in pkg/schema, from schema files
// (pkg/schemafile), from tagged structs (pkg/reflectschema) or from OpenAPI
// request bodies (pkg/openapi). The helpers here cover the common path; the
// subpackages expose the full surface.
package webforms

import (
	"context"

	"github.com/goliatone/go-webforms/pkg/openapi"
	"github.com/goliatone/go-webforms/pkg/reflectschema"
	"github.com/goliatone/go-webforms/pkg/render"
	"github.com/goliatone/go-webforms/pkg/schema"
	"github.com/goliatone/go-webforms/pkg/schemafile"
	"github.com/goliatone/go-webforms/pkg/validation"
)

// Schema aliases schema.Schema for callers that only need the root package.
type Schema = schema.Schema

// Values aliases schema.Values.
type Values = schema.Values

// Report aliases validation.Report.
type Report = validation.Report

// FormOption aliases render.FormOption.
type FormOption = render.FormOption

// New starts a schema compiler, mirroring schema.New.
func New(name string, opts ...schema.Option) *schema.Compiler {
	return schema.New(name, opts...)
}

// LoadFile compiles every form declared in the schema document at path.
func LoadFile(path string, opts ...schemafile.Option) (*schemafile.Set, error) {
	return schemafile.LoadFile(path, opts...)
}

// FromStruct compiles the schema declared by v's struct tags.
func FromStruct(v any, opts ...reflectschema.Option) (*Schema, error) {
	return reflectschema.Compile(v, opts...)
}

// FromOpenAPI compiles the request body of operationID in the OpenAPI
// document raw.
func FromOpenAPI(ctx context.Context, raw []byte, operationID string, opts ...openapi.Option) (*Schema, error) {
	c, err := openapi.FromDocument(ctx, raw, operationID, opts...)
	if err != nil {
		return nil, err
	}
	return c.Compile()
}

// Validate checks record against s using a default validator.
func Validate(s *Schema, record schema.Record) Report {
	return validation.New(s).Validate(record)
}

// ValidateStruct reads v's field values and validates them against s.
func ValidateStruct(s *Schema, v any) (Report, error) {
	record, err := reflectschema.Record(v)
	if err != nil {
		return Report{}, err
	}
	return Validate(s, record), nil
}

// RenderHTML renders every field of s, newline-joined.
func RenderHTML(s *Schema, opts ...FormOption) string {
	return render.Schema(s, opts...)
}
