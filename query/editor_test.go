package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/tabula/schema"
)

var people = schema.Schema{Fields: []schema.Field{
	{Name: "name", Type: schema.TypeString},
	{Name: "age", Type: schema.TypeNumber},
	{Name: "active", Type: schema.TypeBoolean},
	{Name: "joined", Type: schema.TypeDate},
}}

func TestEditorAddDefaults(t *testing.T) {
	e := NewEditor(people)
	c, err := e.Add()
	require.NoError(t, err)
	assert.Equal(t, Condition{Field: "name", Operator: Equals, Value: Scalar("")}, c)
	assert.Equal(t, 1, e.Len())
}

func TestEditorAddWithoutFields(t *testing.T) {
	_, err := NewEditor(schema.Schema{}).Add()
	var emptyErr *schema.EmptySchemaError
	require.True(t, errors.As(err, &emptyErr))
}

func TestEditorSetFieldResetsOperatorAndValue(t *testing.T) {
	e := NewEditor(people)
	_, _ = e.Add()
	require.NoError(t, e.SetValue(0, Scalar("Ann")))

	require.NoError(t, e.SetField(0, "age"))
	assert.Equal(t, Condition{Field: "age", Operator: Equals, Value: Scalar("")}, e.Conditions()[0])

	var nf *FieldNotFoundError
	require.True(t, errors.As(e.SetField(0, "height"), &nf))
}

func TestEditorSetOperatorResetsValue(t *testing.T) {
	e := NewEditor(people)
	_, _ = e.Add()
	require.NoError(t, e.SetField(0, "age"))
	require.NoError(t, e.SetValue(0, Scalar("30")))

	require.NoError(t, e.SetOperator(0, Between))
	assert.Equal(t, Range{}, e.Conditions()[0].Value)

	require.NoError(t, e.SetValue(0, Range{Min: "10", Max: "20"}))
	require.NoError(t, e.SetOperator(0, GreaterThan))
	assert.Equal(t, Scalar(""), e.Conditions()[0].Value)

	var na *OperatorNotAllowedError
	require.True(t, errors.As(e.SetOperator(0, Contains), &na))
	assert.Equal(t, schema.TypeNumber, na.Type)
}

func TestEditorEditsDoNotTouchSiblings(t *testing.T) {
	e := NewEditor(people)
	_, _ = e.Add()
	_, _ = e.Add()
	require.NoError(t, e.SetValue(0, Scalar("Ann")))
	require.NoError(t, e.SetValue(1, Scalar("Bo")))

	require.NoError(t, e.SetField(1, "active"))
	require.NoError(t, e.SetOperator(1, Equals))

	got := e.Conditions()
	assert.Equal(t, Scalar("Ann"), got[0].Value)
	assert.Equal(t, "active", got[1].Field)
}

func TestEditorSetValueShapeMustMatch(t *testing.T) {
	e := NewEditor(people)
	_, _ = e.Add()
	assert.Error(t, e.SetValue(0, Range{Min: "a"}))
	assert.Error(t, e.SetValue(0, nil))
	assert.Error(t, e.SetValue(5, Scalar("x")))
}

func TestEditorRemove(t *testing.T) {
	e := NewEditor(people)
	for i := 0; i < 3; i++ {
		_, _ = e.Add()
	}
	require.NoError(t, e.SetField(0, "age"))
	require.NoError(t, e.SetField(2, "joined"))

	require.NoError(t, e.Remove(1))
	got := e.Conditions()
	require.Len(t, got, 2)
	assert.Equal(t, "age", got[0].Field)
	assert.Equal(t, "joined", got[1].Field)

	assert.Error(t, e.Remove(-1))
}

func TestEditorConditionsIsCopy(t *testing.T) {
	e := NewEditor(people)
	_, _ = e.Add()
	got := e.Conditions()
	got[0].Field = "mutated"
	assert.Equal(t, "name", e.Conditions()[0].Field)
}

func TestEditorRebindDropsStale(t *testing.T) {
	e := NewEditor(people)
	for i := 0; i < 3; i++ {
		_, _ = e.Add()
	}
	require.NoError(t, e.SetField(1, "age"))
	require.NoError(t, e.SetOperator(1, GreaterThan))
	require.NoError(t, e.SetField(2, "joined"))

	reloaded := schema.Schema{Fields: []schema.Field{
		{Name: "name", Type: schema.TypeString},
		{Name: "age", Type: schema.TypeString}, // now text: greater_than no longer allowed
	}}
	dropped := e.Rebind(reloaded)

	require.Len(t, dropped, 2)
	assert.Equal(t, "age", dropped[0].Field)
	assert.Equal(t, "joined", dropped[1].Field)
	require.Equal(t, 1, e.Len())
	assert.Equal(t, "name", e.Conditions()[0].Field)
	assert.Equal(t, reloaded, e.Schema())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(people, nil))

	q := Query{
		{Field: "age", Operator: GreaterThan, Value: Scalar("1")},
		{Field: "height", Operator: Equals, Value: Scalar("1")},
		{Field: "active", Operator: Contains, Value: Scalar("t")},
	}
	err := Validate(people, q)
	require.Error(t, err)

	var nf *FieldNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 1, nf.Index)

	var na *OperatorNotAllowedError
	require.True(t, errors.As(err, &na))
	assert.Equal(t, 2, na.Index)
}
