package render

import (
	"strings"

	"github.com/goliatone/go-webforms/pkg/attrs"
	"github.com/goliatone/go-webforms/pkg/schema"
)

// FormOption customises Form.
type FormOption func(*formConfig)

type formConfig struct {
	wrapper   *schema.Field
	submit    *schema.Field
	overrides map[string]*attrs.Set
	hidden    []HiddenField
	sanitize  bool
}

// WithWrapper opens the output with field (usually schema.FormField) and
// closes it with the matching end tag.
func WithWrapper(field schema.Field) FormOption {
	return func(cfg *formConfig) {
		cfg.wrapper = &field
	}
}

// WithSubmit appends a submit control after the fields.
func WithSubmit(field schema.Field) FormOption {
	return func(cfg *formConfig) {
		cfg.submit = &field
	}
}

// WithOverrides supplies per-field override sets keyed by field name.
func WithOverrides(overrides map[string]*attrs.Set) FormOption {
	return func(cfg *formConfig) {
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]*attrs.Set, len(overrides))
		}
		for name, set := range overrides {
			cfg.overrides[name] = set
		}
	}
}

// WithOverride supplies the override set for one field.
func WithOverride(name string, set *attrs.Set) FormOption {
	return WithOverrides(map[string]*attrs.Set{name: set})
}

// WithHidden emits hidden inputs after the wrapper, sorted by name.
func WithHidden(fields ...HiddenField) FormOption {
	return func(cfg *formConfig) {
		cfg.hidden = append(cfg.hidden, fields...)
	}
}

// WithSanitize passes the final markup through Sanitize.
func WithSanitize() FormOption {
	return func(cfg *formConfig) {
		cfg.sanitize = true
	}
}

// Form renders fields in order, one tag per line.
func Form(fields []schema.Field, opts ...FormOption) string {
	cfg := formConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	lines := make([]string, 0, len(fields)+4)
	if cfg.wrapper != nil {
		lines = append(lines, Field(*cfg.wrapper, cfg.overrides[cfg.wrapper.Name()]))
	}
	for _, hidden := range SortedHiddenFields(MergeHiddenFields(nil, cfg.hidden...)) {
		lines = append(lines, Field(hidden.Field(), nil))
	}
	for _, field := range fields {
		lines = append(lines, Field(field, cfg.overrides[field.Name()]))
	}
	if cfg.submit != nil {
		lines = append(lines, Field(*cfg.submit, cfg.overrides[cfg.submit.Name()]))
	}
	if cfg.wrapper != nil {
		lines = append(lines, Close(*cfg.wrapper))
	}

	out := strings.Join(lines, "\n")
	if cfg.sanitize {
		return Sanitize(out)
	}
	return out
}

// Schema renders every field of s with Form.
func Schema(s *schema.Schema, opts ...FormOption) string {
	if s == nil {
		return Form(nil, opts...)
	}
	return Form(s.Fields(), opts...)
}
