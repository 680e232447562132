package engine

import (
	"fmt"

	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/query"
	"github.com/spektr-org/tabula/schema"
)

// ============================================================================
// EXECUTOR — Filter + render dispatch
// ============================================================================
// Entry point: Execute(schema, rows, spec, opts...)
//
// Pipeline:
//   1. Decode wire conditions (malformed → error, nothing filtered)
//   2. Check conditions against the schema (problems → Result.Errors)
//   3. Apply the query → SubView
//   4. Build the table, and the chart when requested
//   5. Return Result
//
// The input rows are never modified.
// ============================================================================

// Execute runs spec against rows described by s and returns a render-ready Result.
func Execute(s schema.Schema, rows []dataset.Row, spec Spec, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)

	q, err := query.DecodeAll(spec.Conditions)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Success: true,
		Title:   spec.Title,
		Fields:  s.Fields,
		Total:   len(rows),
	}

	if err := query.Validate(s, q); err != nil {
		// Ill-fitting conditions still run.
		for _, e := range unwrapJoined(err) {
			result.Errors = append(result.Errors, e.Error())
		}
		cfg.Logger.Warn("conditions do not fit schema", "problems", len(result.Errors))
	}

	filtered, err := Apply(dataset.NewSliceView(rows), q, opts...)
	if err != nil {
		return nil, err
	}
	result.Matched = filtered.Len()
	result.Rows = dataset.Rows(filtered)

	cfg.Logger.Info("query executed",
		"rows", len(rows), "matched", result.Matched, "conditions", len(q))

	result.Table = BuildTable(s, filtered, spec.Limit)
	result.Table.Title = spec.Title

	if spec.Chart != nil {
		if spec.Chart.XField == "" {
			result.Chart = SuggestChart(s, filtered)
		} else {
			chart, err := BuildChart(s, filtered, *spec.Chart)
			if err != nil {
				return nil, fmt.Errorf("build chart: %w", err)
			}
			result.Chart = chart
		}
		if result.Chart != nil {
			result.Chart.Title = spec.Title
		}
	}

	return result, nil
}

// unwrapJoined flattens an errors.Join result.
func unwrapJoined(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
