package query

import (
	"fmt"

	"github.com/spektr-org/tabula/schema"
)

// MalformedRangeError reports a between condition whose value is not a
// usable {min,max} object. It aborts the whole filter call.
type MalformedRangeError struct {
	Index int // position of the condition in its query
	Field string
	Value string
	Err   error
}

func (e *MalformedRangeError) Error() string {
	msg := fmt.Sprintf("condition %d (%s between): malformed range %q", e.Index, e.Field, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRangeError) Unwrap() error { return e.Err }

// UnknownOperatorError is returned in strict mode for operators outside the
// catalog.
type UnknownOperatorError struct {
	Index    int
	Field    string
	Operator Operator
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("condition %d: unknown operator %q on field %q", e.Index, e.Operator, e.Field)
}

// FieldNotFoundError reports a condition on a field the schema lacks.
type FieldNotFoundError struct {
	Index int
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("condition %d: field %q not in schema", e.Index, e.Field)
}

// OperatorNotAllowedError reports an operator outside the catalog for the
// field's type.
type OperatorNotAllowedError struct {
	Index    int
	Field    string
	Type     schema.FieldType
	Operator Operator
}

func (e *OperatorNotAllowedError) Error() string {
	return fmt.Sprintf("condition %d: operator %q not allowed on %s field %q", e.Index, e.Operator, e.Type, e.Field)
}
