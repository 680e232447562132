package dataset

// ============================================================================
// ROW VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns loaded data. It reads through this interface.
//
// Implementations:
//   SliceView — wraps []Row as loaded
//   SubView   — filtered subset (indices into parent, zero-copy)
// ============================================================================

// View provides indexed access to a dataset.
type View interface {
	Len() int
	Row(index int) Row
}

// SliceView wraps a []Row slice as a View.
type SliceView struct {
	rows []Row
}

// NewSliceView creates a View over rows without copying them.
func NewSliceView(rows []Row) *SliceView {
	return &SliceView{rows: rows}
}

func (v *SliceView) Len() int { return len(v.rows) }

func (v *SliceView) Row(i int) Row {
	if i < 0 || i >= len(v.rows) {
		return Row{}
	}
	return v.rows[i]
}

// SubView is a filtered subset of a parent View.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  View
	indices []int
}

// NewSubView returns the rows of parent at the given indices, in that order.
func NewSubView(parent View, indices []int) *SubView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Row(i int) Row {
	if i < 0 || i >= len(v.indices) {
		return Row{}
	}
	return v.parent.Row(v.indices[i])
}

// Indices exposes the parent positions selected by the view.
func (v *SubView) Indices() []int { return v.indices }

// Rows copies a view into a fresh slice. Row contents are shared.
func Rows(v View) []Row {
	out := make([]Row, v.Len())
	for i := range out {
		out[i] = v.Row(i)
	}
	return out
}
