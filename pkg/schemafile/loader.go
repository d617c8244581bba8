// Package schemafile loads form schemas from JSON, YAML or TOML documents.
//
// A document lists forms (fields, rules, regexes and message overrides) plus
// an optional defaults table. Documents are decoded, checked structurally with
// go-playground/validator and then compiled into schema.Schema values, so
// every compile-time check of the schema package applies to files as well.
package schemafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-webforms/pkg/schema"
)

// ErrDuplicateForm is returned when two documents declare the same form.
var ErrDuplicateForm = errors.New("schemafile: duplicate form")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Option customises loading.
type Option func(*loader)

type loader struct {
	logger   zerolog.Logger
	defaults schema.Defaults
	compile  []schema.Option
}

// WithLogger routes loader and compiler diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

// WithDefaults layers d beneath the defaults declared in documents.
func WithDefaults(d schema.Defaults) Option {
	return func(l *loader) {
		l.defaults = l.defaults.Merge(d)
	}
}

// WithCompilerOptions forwards options to every schema.Compiler.
func WithCompilerOptions(opts ...schema.Option) Option {
	return func(l *loader) {
		l.compile = append(l.compile, opts...)
	}
}

func newLoader(opts []Option) *loader {
	l := &loader{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Set holds the schemas compiled from one or more documents.
type Set struct {
	schemas  map[string]*schema.Schema
	origins  map[string]string
	defaults schema.Defaults
}

// Schema returns the schema called name.
func (s *Set) Schema(name string) (*schema.Schema, bool) {
	if s == nil {
		return nil, false
	}
	sc, ok := s.schemas[name]
	return sc, ok
}

// Names returns the form names sorted.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.schemas))
	for name := range s.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Origin returns the document location that declared name.
func (s *Set) Origin(name string) string {
	if s == nil {
		return ""
	}
	return s.origins[name]
}

// Defaults returns the merged defaults applied while compiling.
func (s *Set) Defaults() schema.Defaults {
	if s == nil {
		return nil
	}
	return schema.Defaults{}.Merge(s.defaults)
}

// Empty reports whether the set holds no schemas.
func (s *Set) Empty() bool {
	return s == nil || len(s.schemas) == 0
}

// Parse decodes and compiles a single document. name is used in errors and,
// through its extension, to pick the decoder.
func Parse(data []byte, name string, opts ...Option) (*Set, error) {
	doc, err := NewDocument(SourceFromBytes(name), data)
	if err != nil {
		return nil, err
	}
	return newLoader(opts).build([]Document{doc})
}

// LoadFile reads and compiles the document at path.
func LoadFile(path string, opts ...Option) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	doc, err := NewDocument(SourceFromFile(path), data)
	if err != nil {
		return nil, err
	}
	return newLoader(opts).build([]Document{doc})
}

// LoadFS walks fsys and compiles every .json, .yaml, .yml and .toml document.
// Defaults from all documents are merged (in walk order) before any form is
// compiled. A nil fsys yields an empty set.
func LoadFS(fsys fs.FS, opts ...Option) (*Set, error) {
	l := newLoader(opts)
	if fsys == nil {
		return l.build(nil)
	}

	var docs []Document
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schemafile: read %s: %w", path, err)
		}
		doc, err := NewDocument(SourceFromFS(path), data)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l.build(docs)
}

// LoadDefaults reads a defaults table. Both a `defaults` and a `tags` table
// are accepted; `tags` wins on conflicts.
func LoadDefaults(path string) (schema.Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	doc, err := NewDocument(SourceFromFile(path), data)
	if err != nil {
		return nil, err
	}
	file, err := decode(doc)
	if err != nil {
		return nil, err
	}
	return file.Defaults.Merge(file.Tags), nil
}

func (l *loader) build(docs []Document) (*Set, error) {
	files := make([]File, 0, len(docs))
	defaults := schema.Defaults{}.Merge(l.defaults)
	for _, doc := range docs {
		file, err := decode(doc)
		if err != nil {
			return nil, err
		}
		if err := validate.Struct(file); err != nil {
			return nil, fmt.Errorf("schemafile: %s: %w", doc.Location(), err)
		}
		defaults = defaults.Merge(file.Defaults).Merge(file.Tags)
		files = append(files, file)
	}

	set := &Set{
		schemas:  make(map[string]*schema.Schema),
		origins:  make(map[string]string),
		defaults: defaults,
	}

	var errs []error
	for i, file := range files {
		location := docs[i].Location()
		for _, form := range file.Forms {
			name := strings.TrimSpace(form.Name)
			if prev, exists := set.origins[name]; exists {
				errs = append(errs, fmt.Errorf("%w %q (%s and %s)", ErrDuplicateForm, name, prev, location))
				continue
			}
			set.origins[name] = location

			opts := append([]schema.Option{
				schema.WithLogger(l.logger),
				schema.WithDefaults(defaults),
			}, l.compile...)

			compiler, err := form.Compiler(opts...)
			if err != nil {
				errs = append(errs, fmt.Errorf("schemafile: %s: %w", location, err))
				continue
			}
			compiled, err := compiler.Compile()
			if err != nil {
				errs = append(errs, fmt.Errorf("schemafile: %s: %w", location, err))
				continue
			}
			set.schemas[name] = compiled
			l.logger.Debug().Str("form", name).Str("source", location).Int("fields", compiled.Len()).Msg("compiled form")
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return set, nil
}

type format string

const (
	formatJSON format = "json"
	formatYAML format = "yaml"
	formatTOML format = "toml"
)

func formatFor(location string) (format, bool) {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".json":
		return formatJSON, true
	case ".yaml", ".yml":
		return formatYAML, true
	case ".toml":
		return formatTOML, true
	default:
		return "", false
	}
}

// decode picks the decoder from the extension, or tries JSON, YAML and TOML
// in that order when the extension is unknown.
func decode(doc Document) (File, error) {
	raw := doc.Raw()
	if f, ok := formatFor(doc.Location()); ok {
		file, err := decodeAs(f, raw)
		if err != nil {
			return File{}, fmt.Errorf("schemafile: parse %s: %w", doc.Location(), err)
		}
		return file, nil
	}

	for _, f := range []format{formatJSON, formatYAML, formatTOML} {
		if file, err := decodeAs(f, raw); err == nil {
			return file, nil
		}
	}
	return File{}, fmt.Errorf("schemafile: parse %s: invalid JSON, YAML or TOML", doc.Location())
}

func decodeAs(f format, raw []byte) (File, error) {
	var file File
	switch f {
	case formatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return File{}, err
		}
	case formatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return File{}, err
		}
	case formatTOML:
		md, err := toml.Decode(string(raw), &file)
		if err != nil {
			return File{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return File{}, fmt.Errorf("unknown keys %v", undecoded)
		}
	}
	return file, nil
}

func isSchemaFile(path string) bool {
	_, ok := formatFor(path)
	return ok
}
