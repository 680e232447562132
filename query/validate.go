package query

import (
	"errors"

	"github.com/spektr-org/tabula/schema"
)

// Validate checks every condition against the schema: the field must exist
// and the operator must be in the catalog for the field's type. All problems
// are reported together.
func Validate(s schema.Schema, q Query) error {
	var errs []error
	for i, c := range q {
		if err := validateOne(s, i, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateOne(s schema.Schema, index int, c Condition) error {
	f, ok := s.Lookup(c.Field)
	if !ok {
		return &FieldNotFoundError{Index: index, Field: c.Field}
	}
	if !Allowed(f.Type, c.Operator) {
		return &OperatorNotAllowedError{Index: index, Field: c.Field, Type: f.Type, Operator: c.Operator}
	}
	return nil
}
