package schema

import "strings"

// ============================================================================
// SCHEMA — Describes the shape of a loaded dataset
// ============================================================================
// Inferred from the first row of every newly loaded dataset. Never merged:
// a reload replaces the whole field list.
// The query editor uses it to offer fields and operators.
// The chart/table hand-off uses it to map fields onto axis types.
// ============================================================================

// FieldType is the semantic type of a field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeDate    FieldType = "date"
	TypeBoolean FieldType = "boolean"
)

// Valid reports whether t is one of the four known types.
func (t FieldType) Valid() bool {
	switch t {
	case TypeString, TypeNumber, TypeDate, TypeBoolean:
		return true
	}
	return false
}

// ParseFieldType maps a type name to a FieldType, defaulting to string.
func ParseFieldType(s string) FieldType {
	t := FieldType(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t
	}
	return TypeString
}

// Field describes one named column.
type Field struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// Schema is the ordered list of fields of one dataset snapshot.
type Schema struct {
	Fields []Field `json:"fields"`

	// Inference metadata
	InferredFrom string `json:"inferredFrom,omitempty"`
	InferredAt   string `json:"inferredAt,omitempty"`
}

// Names returns all field names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Lookup finds a field by exact name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// TypeOf returns the type of a field, or string when the field is unknown.
func (s Schema) TypeOf(name string) FieldType {
	if f, ok := s.Lookup(name); ok {
		return f.Type
	}
	return TypeString
}

// FieldsOfType returns the fields with the given type, in schema order.
func (s Schema) FieldsOfType(t FieldType) []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

func (s Schema) IsEmpty() bool { return len(s.Fields) == 0 }
