package query

import (
	"strings"

	"github.com/spektr-org/tabula/schema"
)

// Operator names one leaf comparison.
type Operator string

const (
	Equals      Operator = "equals"
	Contains    Operator = "contains"
	GreaterThan Operator = "greater_than"
	LessThan    Operator = "less_than"
	Between     Operator = "between"
	StartsWith  Operator = "starts_with"
	EndsWith    Operator = "ends_with"
)

var allOperators = []Operator{Equals, Contains, GreaterThan, LessThan, Between, StartsWith, EndsWith}

var (
	orderedOps = []Operator{Equals, GreaterThan, LessThan, Between}
	booleanOps = []Operator{Equals}
	textOps    = []Operator{Equals, Contains, StartsWith, EndsWith}
)

// OperatorsFor returns the operators offered for a field type. The first
// entry is the default for a new condition. Unknown types get the string set.
func OperatorsFor(t schema.FieldType) []Operator {
	var ops []Operator
	switch t {
	case schema.TypeNumber, schema.TypeDate:
		ops = orderedOps
	case schema.TypeBoolean:
		ops = booleanOps
	default:
		ops = textOps
	}
	out := make([]Operator, len(ops))
	copy(out, ops)
	return out
}

// Allowed reports whether op is in the catalog for t.
func Allowed(t schema.FieldType, op Operator) bool {
	for _, o := range OperatorsFor(t) {
		if o == op {
			return true
		}
	}
	return false
}

// Known reports whether op is one of the seven operators.
func Known(op Operator) bool {
	for _, o := range allOperators {
		if o == op {
			return true
		}
	}
	return false
}

// Label is the display name of op for a field of type t.
// Ordering comparisons on dates read as After/Before.
func Label(op Operator, t schema.FieldType) string {
	if t == schema.TypeDate {
		switch op {
		case GreaterThan:
			return "After"
		case LessThan:
			return "Before"
		}
	}
	words := strings.Split(string(op), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
