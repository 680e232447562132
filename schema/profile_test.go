package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/tabula/dataset"
)

func profileRows() []dataset.Row {
	keys := []string{"city", "temp"}
	return []dataset.Row{
		dataset.NewRow(keys, []dataset.Value{dataset.String("Oslo"), dataset.Number(4)}),
		dataset.NewRow(keys, []dataset.Value{dataset.String("Rome"), dataset.Null()}),
		dataset.NewRow(keys, []dataset.Value{dataset.String("Oslo"), dataset.String("n/a")}),
		dataset.NewRow([]string{"city"}, []dataset.Value{dataset.String("Lima")}),
	}
}

func TestProfile(t *testing.T) {
	rows := profileRows()
	s, err := FromRows(rows)
	require.NoError(t, err)

	profiles := Profile(s, rows)
	require.Len(t, profiles, 2)

	city := profiles[0]
	assert.Equal(t, "city", city.Name)
	assert.Equal(t, 0, city.NullCount)
	assert.Equal(t, 3, city.UniqueCount)
	assert.Equal(t, []string{"Lima", "Oslo", "Rome"}, city.Samples)
	assert.Equal(t, "low", city.Cardinality)

	temp := profiles[1]
	assert.Equal(t, TypeNumber, temp.Type)
	assert.Equal(t, 2, temp.NullCount) // explicit null + absent key
	assert.Equal(t, 1, temp.Mismatched)
}

func TestHealth(t *testing.T) {
	rows := profileRows()
	s, err := FromRows(rows)
	require.NoError(t, err)

	h := Health(s, rows)
	// 8 cells, 6 present, 5 of them consistent.
	assert.InDelta(t, 75.0, h.Completeness, 0.001)
	assert.InDelta(t, 83.333, h.Consistency, 0.01)

	assert.Equal(t, HealthMetrics{}, Health(s, nil))
}
