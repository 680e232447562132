// Package tabula filters tabular data with typed, schema-aware conditions.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/tabula/engine"
//	    "github.com/spektr-org/tabula/helpers"
//	    "github.com/spektr-org/tabula/query"
//	)
//
//	src, err := helpers.LoadFile("people.csv")
//	cond, err := query.ParseExpr("age > 18")
//	rows, err := engine.Filter(src.Rows, query.Query{cond})
//
// Loaders produce typed rows (dataset), a schema is inferred from the
// first row (schema), conditions are checked against the per-type
// operator catalog (query) and evaluated as one AND-combined predicate
// (engine). Rows are never modified; every result is a fresh slice or a
// zero-copy view.
package tabula
