package engine

import (
	"fmt"

	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/schema"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from a schema + view
// ============================================================================
// One column per schema field, in schema order. Missing and null values
// render as empty cells.
// ============================================================================

// BuildTable renders up to limit rows of view. A non-positive limit shows all rows.
func BuildTable(s schema.Schema, view dataset.View, limit int) *TableData {
	columns := make([]Column, 0, len(s.Fields))
	for _, f := range s.Fields {
		align := "left"
		if f.Type == schema.TypeNumber {
			align = "right"
		}
		columns = append(columns, Column{Key: f.Name, Label: f.Name, Type: f.Type, Align: align})
	}

	n := view.Len()
	shown := n
	if limit > 0 && limit < n {
		shown = limit
	}

	rows := make([][]string, 0, shown)
	for i := 0; i < shown; i++ {
		row := view.Row(i)
		cells := make([]string, len(columns))
		for j, c := range columns {
			if v, ok := row.Lookup(c.Key); ok {
				cells[j] = v.Text()
			}
		}
		rows = append(rows, cells)
	}

	return &TableData{
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Showing %d of %d rows", shown, n),
			Values: map[string]string{
				"shown": fmt.Sprintf("%d", shown),
				"total": fmt.Sprintf("%d", n),
			},
		},
	}
}
