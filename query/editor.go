package query

import (
	"fmt"

	"github.com/spektr-org/tabula/schema"
)

// ============================================================================
// EDITOR — Condition lifecycle for one query-editing session
// ============================================================================
// New conditions start on the first field with equals and an empty value.
// Changing a condition's field or operator resets its value; edits never
// touch sibling conditions.
// ============================================================================

// Editor owns the conditions of one editing session.
type Editor struct {
	schema     schema.Schema
	conditions Query
}

// NewEditor starts an empty session over s.
func NewEditor(s schema.Schema) *Editor {
	return &Editor{schema: s}
}

// Schema returns the schema the session is bound to.
func (e *Editor) Schema() schema.Schema { return e.schema }

// Len returns the number of conditions.
func (e *Editor) Len() int { return len(e.conditions) }

// Conditions returns a copy of the current query.
func (e *Editor) Conditions() Query {
	out := make(Query, len(e.conditions))
	copy(out, e.conditions)
	return out
}

// Add appends a default condition and returns it.
func (e *Editor) Add() (Condition, error) {
	if e.schema.IsEmpty() {
		return Condition{}, &schema.EmptySchemaError{Reason: "no fields to filter on"}
	}
	c := Condition{
		Field:    e.schema.Fields[0].Name,
		Operator: Equals,
		Value:    Scalar(""),
	}
	e.conditions = append(e.conditions, c)
	return c, nil
}

// SetField moves condition i to another field. The operator becomes the
// default for the new field's type and the value is reset.
func (e *Editor) SetField(i int, name string) error {
	if err := e.check(i); err != nil {
		return err
	}
	f, ok := e.schema.Lookup(name)
	if !ok {
		return &FieldNotFoundError{Index: i, Field: name}
	}
	op := OperatorsFor(f.Type)[0]
	e.conditions[i] = Condition{Field: name, Operator: op, Value: EmptyValue(op)}
	return nil
}

// SetOperator changes the operator of condition i and resets its value.
func (e *Editor) SetOperator(i int, op Operator) error {
	if err := e.check(i); err != nil {
		return err
	}
	c := e.conditions[i]
	t := e.schema.TypeOf(c.Field)
	if !Allowed(t, op) {
		return &OperatorNotAllowedError{Index: i, Field: c.Field, Type: t, Operator: op}
	}
	c.Operator = op
	c.Value = EmptyValue(op)
	e.conditions[i] = c
	return nil
}

// SetValue replaces the literal of condition i. A between condition only
// accepts a Range and every other operator only a Scalar.
func (e *Editor) SetValue(i int, v Value) error {
	if err := e.check(i); err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("condition %d: nil value", i)
	}
	c := e.conditions[i]
	_, isRange := v.(Range)
	if (c.Operator == Between) != isRange {
		return fmt.Errorf("condition %d: %T value does not fit operator %q", i, v, c.Operator)
	}
	c.Value = v
	e.conditions[i] = c
	return nil
}

// Remove deletes condition i, keeping the order of the rest.
func (e *Editor) Remove(i int) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.conditions = append(e.conditions[:i:i], e.conditions[i+1:]...)
	return nil
}

// Rebind installs the schema of a newly loaded dataset. Conditions whose
// field disappeared or whose operator is no longer allowed are dropped and
// returned; the others are kept in order.
func (e *Editor) Rebind(s schema.Schema) Query {
	e.schema = s
	kept := e.conditions[:0:0]
	var dropped Query
	for i, c := range e.conditions {
		if validateOne(s, i, c) != nil {
			dropped = append(dropped, c)
			continue
		}
		kept = append(kept, c)
	}
	e.conditions = kept
	return dropped
}

func (e *Editor) check(i int) error {
	if i < 0 || i >= len(e.conditions) {
		return fmt.Errorf("condition index %d out of range [0,%d)", i, len(e.conditions))
	}
	return nil
}
