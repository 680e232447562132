package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpr(t *testing.T) {
	cases := []struct {
		in   string
		want Condition
	}{
		{"age greater_than 18", Condition{Field: "age", Operator: GreaterThan, Value: Scalar("18")}},
		{"age > 18", Condition{Field: "age", Operator: GreaterThan, Value: Scalar("18")}},
		{"name ~ an", Condition{Field: "name", Operator: Contains, Value: Scalar("an")}},
		{"First Name STARTS_WITH Jo", Condition{Field: "First Name", Operator: StartsWith, Value: Scalar("Jo")}},
		{"city equals \"New  York\"", Condition{Field: "city", Operator: Equals, Value: Scalar("New  York")}},
		{"age between 10..20", Condition{Field: "age", Operator: Between, Value: Range{Min: "10", Max: "20"}}},
		{"age between ..20", Condition{Field: "age", Operator: Between, Value: Range{Max: "20"}}},
		{`age between {"min":"1","max":"2"}`, Condition{Field: "age", Operator: Between, Value: Range{Min: "1", Max: "2"}}},
		{"note equals", Condition{Field: "note", Operator: Equals, Value: Scalar("")}},
	}
	for _, tc := range cases {
		got, err := ParseExpr(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseExprErrors(t *testing.T) {
	_, err := ParseExpr("age 18")
	assert.Error(t, err)

	_, err = ParseExpr("equals 18")
	assert.Error(t, err)

	_, err = ParseExpr("age between 10-20")
	var mre *MalformedRangeError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, "age", mre.Field)
}

func TestParseQuery(t *testing.T) {
	raws, err := ParseQuery([]byte("```json\n[{\"field\":\"age\",\"operator\":\"greater_than\",\"value\":\"18\"}]\n```"))
	require.NoError(t, err)
	require.Equal(t, []RawCondition{{Field: "age", Operator: GreaterThan, Value: "18"}}, raws)

	raws, err = ParseQuery([]byte(`{"conditions":[{"field":"n","operator":"between","value":"{\"min\":\"1\",\"max\":\"2\"}"}]}`))
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, `{"min":"1","max":"2"}`, raws[0].Value)

	raws, err = ParseQuery([]byte("  "))
	require.NoError(t, err)
	assert.Empty(t, raws)

	_, err = ParseQuery([]byte("[{"))
	assert.Error(t, err)
}
