package schema

// Record exposes the current values of a data record by field name. Any
// record type can be validated once it implements Record; the validator never
// sees the concrete type.
type Record interface {
	FieldValue(name string) (Value, bool)
}

// Values is a map backed Record.
type Values map[string]Value

// FieldValue implements Record.
func (v Values) FieldValue(name string) (Value, bool) {
	value, ok := v[name]
	return value, ok
}

// RecordFunc adapts a lookup function to Record.
type RecordFunc func(name string) (Value, bool)

// FieldValue implements Record.
func (fn RecordFunc) FieldValue(name string) (Value, bool) {
	if fn == nil {
		return Value{}, false
	}
	return fn(name)
}
