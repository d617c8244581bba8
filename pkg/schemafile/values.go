package schemafile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-webforms/pkg/schema"
)

// LoadValues reads a JSON, YAML or TOML values document and converts it into
// a record for s.
func LoadValues(path string, s *schema.Schema) (schema.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	return ParseValues(data, path, s)
}

// ParseValues decodes a flat values document and converts each entry using
// the kind of the field it names. Keys that name no field are ignored.
func ParseValues(data []byte, name string, s *schema.Schema) (schema.Values, error) {
	raw, err := decodeValues(data, name)
	if err != nil {
		return nil, fmt.Errorf("schemafile: parse %s: %w", name, err)
	}
	return ValuesFor(s, raw)
}

// ValuesFor converts decoded data into a record using each field's kind.
func ValuesFor(s *schema.Schema, raw map[string]any) (schema.Values, error) {
	out := make(schema.Values, len(raw))
	for _, field := range s.Fields() {
		value, ok := raw[field.Name()]
		if !ok {
			continue
		}
		converted, err := schema.ValueFrom(field.Kind(), value)
		if err != nil {
			return nil, fmt.Errorf("schemafile: field %q: %w", field.Name(), err)
		}
		out[field.Name()] = converted
	}
	return out, nil
}

func decodeValues(data []byte, name string) (map[string]any, error) {
	f, known := formatFor(name)
	if !known {
		for _, candidate := range []format{formatJSON, formatYAML, formatTOML} {
			if raw, err := decodeValuesAs(candidate, data); err == nil {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("invalid JSON, YAML or TOML")
	}
	return decodeValuesAs(f, data)
}

func decodeValuesAs(f format, data []byte) (map[string]any, error) {
	raw := map[string]any{}
	switch f {
	case formatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case formatTOML:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}
