package engine

import (
	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/query"
)

// ============================================================================
// FILTERS — Query evaluation over datasets
// ============================================================================
// Single pass over the view: each row runs through the compiled predicate.
// Apply returns a SubView (index list into parent), zero data copy.
// Filter and FilterRaw return fresh slices and never touch their input.
// ============================================================================

// Apply returns a view of the rows in view that satisfy q.
// An empty query returns view itself.
func Apply(view dataset.View, q query.Query, opts ...Option) (dataset.View, error) {
	if len(q) == 0 {
		return view, nil
	}

	pred, err := Compile(q, opts...)
	if err != nil {
		return nil, err
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if pred(view.Row(i)) {
			indices = append(indices, i)
		}
	}

	cfg := applyOptions(opts)
	cfg.Logger.Debug("query applied", "conditions", len(q), "rows", n, "matched", len(indices))

	return dataset.NewSubView(view, indices), nil
}

// Filter returns the rows satisfying every condition of q, in input order.
func Filter(rows []dataset.Row, q query.Query, opts ...Option) ([]dataset.Row, error) {
	view, err := Apply(dataset.NewSliceView(rows), q, opts...)
	if err != nil {
		return nil, err
	}
	return dataset.Rows(view), nil
}

// FilterRaw decodes wire conditions and filters rows with them. A
// malformed condition fails the whole call before any row is examined.
func FilterRaw(rows []dataset.Row, raws []query.RawCondition, opts ...Option) ([]dataset.Row, error) {
	q, err := query.DecodeAll(raws)
	if err != nil {
		return nil, err
	}
	return Filter(rows, q, opts...)
}
