package schemafile

import "github.com/goliatone/go-webforms/pkg/schema"

// File is the on-disk layout of a schema document.
type File struct {
	Forms    []FormSpec      `json:"forms" yaml:"forms" toml:"forms" validate:"dive"`
	Defaults schema.Defaults `json:"defaults" yaml:"defaults" toml:"defaults"`
	// Tags is accepted as an alias of Defaults.
	Tags schema.Defaults `json:"tags" yaml:"tags" toml:"tags"`
}

// FormSpec declares one schema.
type FormSpec struct {
	Name        string            `json:"name" yaml:"name" toml:"name" validate:"required"`
	Regex       map[string]string `json:"regex" yaml:"regex" toml:"regex"`
	Messages    map[string]string `json:"messages" yaml:"messages" toml:"messages"`
	Constraints bool              `json:"constraints" yaml:"constraints" toml:"constraints"`
	Fields      []FieldSpec       `json:"fields" yaml:"fields" toml:"fields" validate:"required,min=1,dive"`
}

// FieldSpec declares one field.
type FieldSpec struct {
	Name     string     `json:"name" yaml:"name" toml:"name" validate:"required"`
	Kind     string     `json:"kind" yaml:"kind" toml:"kind" validate:"omitempty,oneof=text string integer int float number"`
	Tag      string     `json:"tag" yaml:"tag" toml:"tag"`
	Type     string     `json:"type" yaml:"type" toml:"type"`
	Class    string     `json:"class" yaml:"class" toml:"class"`
	Optional bool       `json:"optional" yaml:"optional" toml:"optional"`
	Required bool       `json:"required" yaml:"required" toml:"required"`
	Attrs    []AttrSpec `json:"attrs" yaml:"attrs" toml:"attrs" validate:"dive"`
	Rules    []RuleSpec `json:"rules" yaml:"rules" toml:"rules" validate:"dive"`
}

// AttrSpec declares an attribute. A spec without a name is a single
// (boolean style) attribute. Replace overwrites instead of merging.
type AttrSpec struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Value   string `json:"value" yaml:"value" toml:"value" validate:"required_without=Name"`
	Replace bool   `json:"replace" yaml:"replace" toml:"replace"`
}

// RuleSpec declares a rule. Which of the remaining keys is read depends on
// Kind: length for min_length/max_length, value for min_value/max_value,
// regex (a registered id) or pattern (inline) for pattern, target for
// field_match.
type RuleSpec struct {
	Kind    string  `json:"kind" yaml:"kind" toml:"kind" validate:"required"`
	Length  *uint64 `json:"length" yaml:"length" toml:"length"`
	Value   any     `json:"value" yaml:"value" toml:"value"`
	Regex   string  `json:"regex" yaml:"regex" toml:"regex"`
	Pattern string  `json:"pattern" yaml:"pattern" toml:"pattern"`
	Target  string  `json:"target" yaml:"target" toml:"target"`
}
