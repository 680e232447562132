package engine

import (
	"time"

	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/query"
	"github.com/spektr-org/tabula/schema"
)

// row builds a dataset.Row from alternating keys and Go values.
func row(pairs ...interface{}) dataset.Row {
	var r dataset.Row
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i].(string), value(pairs[i+1]))
	}
	return r
}

func value(v interface{}) dataset.Value {
	switch x := v.(type) {
	case nil:
		return dataset.Null()
	case string:
		return dataset.String(x)
	case int:
		return dataset.Number(float64(x))
	case float64:
		return dataset.Number(x)
	case bool:
		return dataset.Bool(x)
	case time.Time:
		return dataset.Date(x, "")
	case dataset.Value:
		return x
	}
	panic("unsupported test value")
}

func cond(field string, op query.Operator, v string) query.Condition {
	return query.Condition{Field: field, Operator: op, Value: query.Scalar(v)}
}

func annAndBo() []dataset.Row {
	return []dataset.Row{
		row("age", 30, "name", "Ann"),
		row("age", 17, "name", "Bo"),
	}
}

var salesSchema = schema.Schema{Fields: []schema.Field{
	{Name: "region", Type: schema.TypeString},
	{Name: "amount", Type: schema.TypeNumber},
	{Name: "day", Type: schema.TypeDate},
	{Name: "paid", Type: schema.TypeBoolean},
}}

func day(s string) dataset.Value {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return dataset.Date(t, s)
}

func sales() []dataset.Row {
	return []dataset.Row{
		row("region", "North", "amount", 10, "day", day("2024-01-02"), "paid", true),
		row("region", "South", "amount", 25, "day", day("2024-01-01"), "paid", false),
		row("region", "North", "amount", 5, "day", day("2024-01-03"), "paid", true),
		row("region", "East", "amount", nil, "day", day("2024-01-02"), "paid", true),
	}
}
