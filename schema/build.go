package schema

import (
	"time"

	"github.com/spektr-org/tabula/dataset"
)

// EmptySchemaError is returned when a schema is requested from no data.
type EmptySchemaError struct {
	Reason string
}

func (e *EmptySchemaError) Error() string {
	if e.Reason == "" {
		return "cannot build schema: no fields"
	}
	return "cannot build schema: " + e.Reason
}

// Build derives a schema from one representative row, preserving key order.
func Build(row dataset.Row) (Schema, error) {
	if row.Len() == 0 {
		return Schema{}, &EmptySchemaError{Reason: "row has no fields"}
	}

	fields := make([]Field, 0, row.Len())
	for _, key := range row.Keys() {
		v, _ := row.Get(key)
		fields = append(fields, Field{Name: key, Type: Infer(v)})
	}

	return Schema{
		Fields:     fields,
		InferredAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// FromRows builds the schema of a dataset from its first row.
func FromRows(rows []dataset.Row) (Schema, error) {
	if len(rows) == 0 {
		return Schema{}, &EmptySchemaError{Reason: "dataset has no rows"}
	}
	return Build(rows[0])
}
