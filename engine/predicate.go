package engine

import (
	"errors"
	"math"
	"strings"

	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/query"
)

// ============================================================================
// PREDICATES — Compile a query into a single row test
// ============================================================================
// Conditions are AND-combined. A row whose field is missing or null fails
// the condition whatever the operator. Literals are prepared once at
// compile time so the per-row loop only coerces the row side.
// ============================================================================

// Predicate reports whether a row satisfies every condition of a query.
type Predicate func(row dataset.Row) bool

type valueTest func(v dataset.Value) bool

// Compile turns q into a Predicate. An empty query compiles to a predicate
// that accepts every row.
func Compile(q query.Query, opts ...Option) (Predicate, error) {
	cfg := applyOptions(opts)

	tests := make([]func(dataset.Row) bool, 0, len(q))
	for i, c := range q {
		t, err := compileCondition(i, c, cfg)
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}

	return func(row dataset.Row) bool {
		for _, t := range tests {
			if !t(row) {
				return false
			}
		}
		return true
	}, nil
}

func compileCondition(index int, c query.Condition, cfg *config) (func(dataset.Row) bool, error) {
	var test valueTest

	switch c.Operator {
	case query.Equals:
		lit := newLiteral(c.Text())
		test = func(v dataset.Value) bool { return looseEqual(v, lit) }

	case query.Contains:
		needle := strings.ToLower(c.Text())
		test = func(v dataset.Value) bool { return strings.Contains(strings.ToLower(v.Text()), needle) }

	case query.StartsWith:
		prefix := strings.ToLower(c.Text())
		test = func(v dataset.Value) bool { return strings.HasPrefix(strings.ToLower(v.Text()), prefix) }

	case query.EndsWith:
		suffix := strings.ToLower(c.Text())
		test = func(v dataset.Value) bool { return strings.HasSuffix(strings.ToLower(v.Text()), suffix) }

	case query.GreaterThan:
		bound := numericText(c.Text())
		test = func(v dataset.Value) bool { return numeric(v) > bound }

	case query.LessThan:
		bound := numericText(c.Text())
		test = func(v dataset.Value) bool { return numeric(v) < bound }

	case query.Between:
		r, err := rangeOf(index, c)
		if err != nil {
			return nil, err
		}
		lo, hi := rangeBound(r.Min, math.Inf(-1)), rangeBound(r.Max, math.Inf(1))
		test = func(v dataset.Value) bool {
			x := numeric(v)
			return x >= lo && x <= hi
		}

	default:
		if cfg.StrictOperators {
			return nil, &query.UnknownOperatorError{Index: index, Field: c.Field, Operator: c.Operator}
		}
		cfg.Logger.Warn("unknown operator, condition passes every row",
			"field", c.Field, "operator", string(c.Operator))
		test = func(dataset.Value) bool { return true }
	}

	field := c.Field
	return func(row dataset.Row) bool {
		v, ok := row.Lookup(field)
		if !ok {
			return false
		}
		return test(v)
	}, nil
}

// rangeOf extracts the Range of a between condition. A scalar holding the
// JSON range form is accepted; anything else is malformed.
func rangeOf(index int, c query.Condition) (query.Range, error) {
	switch v := c.Value.(type) {
	case query.Range:
		return v, nil
	case query.Scalar:
		r, err := query.ParseRange(string(v))
		if err != nil {
			return query.Range{}, &query.MalformedRangeError{Index: index, Field: c.Field, Value: string(v), Err: err}
		}
		return r, nil
	}
	return query.Range{}, &query.MalformedRangeError{
		Index: index, Field: c.Field, Err: errors.New("between requires a range value"),
	}
}

// rangeBound coerces one bound; an empty bound leaves that side open.
func rangeBound(s string, open float64) float64 {
	if strings.TrimSpace(s) == "" {
		return open
	}
	return numericText(s)
}
