package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/tabula/dataset"
)

func TestBuildPreservesKeyOrder(t *testing.T) {
	row := dataset.NewRow(
		[]string{"zeta", "age", "active", "joined", "name", "note"},
		[]dataset.Value{
			dataset.String("z"),
			dataset.Number(30),
			dataset.Bool(true),
			dataset.String("2024-01-01"),
			dataset.String("Ann"),
			dataset.Null(),
		},
	)

	s, err := Build(row)
	require.NoError(t, err)

	require.Equal(t, []string{"zeta", "age", "active", "joined", "name", "note"}, s.Names())
	assert.Equal(t, []Field{
		{Name: "zeta", Type: TypeString},
		{Name: "age", Type: TypeNumber},
		{Name: "active", Type: TypeBoolean},
		{Name: "joined", Type: TypeDate},
		{Name: "name", Type: TypeString},
		{Name: "note", Type: TypeString},
	}, s.Fields)
	assert.NotEmpty(t, s.InferredAt)
}

func TestBuildEmptyRow(t *testing.T) {
	_, err := Build(dataset.Row{})
	require.Error(t, err)

	var emptyErr *EmptySchemaError
	require.True(t, errors.As(err, &emptyErr))
	assert.Contains(t, err.Error(), "no fields")
}

func TestFromRows(t *testing.T) {
	_, err := FromRows(nil)
	var emptyErr *EmptySchemaError
	require.True(t, errors.As(err, &emptyErr))
	assert.Contains(t, err.Error(), "no rows")

	rows := []dataset.Row{
		dataset.NewRow([]string{"a"}, []dataset.Value{dataset.Number(1)}),
		dataset.NewRow([]string{"a", "b"}, []dataset.Value{dataset.String("x"), dataset.Bool(false)}),
	}
	s, err := FromRows(rows)
	require.NoError(t, err)
	// Only the first row is representative.
	require.Equal(t, []Field{{Name: "a", Type: TypeNumber}}, s.Fields)
}

func TestSchemaLookup(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "age", Type: TypeNumber},
		{Name: "name", Type: TypeString},
		{Name: "score", Type: TypeNumber},
	}}

	f, ok := s.Lookup("age")
	require.True(t, ok)
	assert.Equal(t, TypeNumber, f.Type)

	_, ok = s.Lookup("Age")
	assert.False(t, ok)

	assert.Equal(t, TypeString, s.TypeOf("missing"))
	assert.Len(t, s.FieldsOfType(TypeNumber), 2)
	assert.False(t, s.IsEmpty())
	assert.True(t, Schema{}.IsEmpty())
}
