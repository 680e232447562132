package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/schema"
)

func TestBuildTable(t *testing.T) {
	table := BuildTable(salesSchema, dataset.NewSliceView(sales()), 2)

	require.Len(t, table.Columns, 4)
	assert.Equal(t, Column{Key: "amount", Label: "amount", Type: schema.TypeNumber, Align: "right"}, table.Columns[1])
	assert.Equal(t, [][]string{
		{"North", "10", "2024-01-02", "true"},
		{"South", "25", "2024-01-01", "false"},
	}, table.Rows)
	assert.Equal(t, "Showing 2 of 4 rows", table.Summary.Label)
}

func TestBuildTableMissingCells(t *testing.T) {
	table := BuildTable(salesSchema, dataset.NewSliceView(sales()), 0)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, []string{"East", "", "2024-01-02", "true"}, table.Rows[3])
}
