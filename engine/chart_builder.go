package engine

import (
	"fmt"

	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/schema"
)

// ============================================================================
// CHART BUILDER — Produces Vega-Lite ChartSpecs from a schema + view
// ============================================================================
// SuggestChart picks a chart from field types alone and passes rows through.
// BuildChart honors explicit ChartOptions and pre-aggregates via
// GroupAndAggregate, so the renderer only draws.
// ============================================================================

var chartMarks = map[string]bool{"bar": true, "line": true, "area": true, "point": true, "circle": true}

// SuggestChart picks a default chart for a dataset:
//
//	string + number → bar
//	date + number   → line
//	two numbers     → point
//	otherwise       → text listing the first field
//
// Returns nil for an empty schema.
func SuggestChart(s schema.Schema, view dataset.View) *ChartSpec {
	if s.IsEmpty() {
		return nil
	}

	numbers := s.FieldsOfType(schema.TypeNumber)
	categorical := s.FieldsOfType(schema.TypeString)
	temporal := s.FieldsOfType(schema.TypeDate)

	spec := &ChartSpec{Schema: VegaLiteSchema, Data: ChartData{Values: rowValues(view)}}

	switch {
	case len(categorical) > 0 && len(numbers) > 0:
		spec.Mark = "bar"
		spec.Encoding = pairEncoding(categorical[0], numbers[0])
	case len(temporal) > 0 && len(numbers) > 0:
		spec.Mark = "line"
		spec.Encoding = pairEncoding(temporal[0], numbers[0])
	case len(numbers) >= 2:
		spec.Mark = "point"
		spec.Encoding = pairEncoding(numbers[0], numbers[1])
	default:
		spec.Mark = "text"
		spec.Encoding = Encoding{Text: &Channel{Field: s.Fields[0].Name}}
	}
	return spec
}

func pairEncoding(x, y schema.Field) Encoding {
	xc := Channel{Field: x.Name, Type: AxisType(x.Type)}
	yc := Channel{Field: y.Name, Type: AxisType(y.Type)}
	return Encoding{X: &xc, Y: &yc, Tooltip: []Channel{xc, yc}}
}

func rowValues(view dataset.View) []map[string]interface{} {
	values := make([]map[string]interface{}, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		values = append(values, view.Row(i).Map())
	}
	return values
}

// BuildChart produces a chart for explicit options. Rows are grouped by
// the x field (and the color field when set) and the y field is reduced
// with the chosen aggregation. Count needs no y field.
func BuildChart(s schema.Schema, view dataset.View, opts ChartOptions) (*ChartSpec, error) {
	mark := opts.Mark
	if mark == "" {
		mark = "bar"
	}
	if !chartMarks[mark] {
		return nil, fmt.Errorf("unsupported chart mark %q", mark)
	}

	xField, ok := s.Lookup(opts.XField)
	if !ok {
		return nil, fmt.Errorf("chart x field %q is not in the schema", opts.XField)
	}

	agg := opts.Aggregation
	if agg == "" {
		agg = AggCount
	}
	if opts.YField == "" && agg != AggCount {
		return nil, fmt.Errorf("aggregation %q needs a y field", agg)
	}
	if opts.YField != "" {
		if _, ok := s.Lookup(opts.YField); !ok {
			return nil, fmt.Errorf("chart y field %q is not in the schema", opts.YField)
		}
	}

	groupBy := []string{xField.Name}
	if opts.Color != "" {
		if _, ok := s.Lookup(opts.Color); !ok {
			return nil, fmt.Errorf("chart color field %q is not in the schema", opts.Color)
		}
		groupBy = append(groupBy, opts.Color)
	}

	sortBy := opts.SortBy
	if sortBy == "" && xField.Type != schema.TypeString && xField.Type != schema.TypeBoolean {
		sortBy = "chronological"
	}

	groups := GroupAndAggregate(view, groupBy, opts.YField, agg, sortBy, opts.Limit)

	yName := opts.YField
	yTitle := LabelForAggregation(agg)
	if agg == AggCount {
		yName = "count"
	} else {
		yTitle += " of " + opts.YField
	}

	values := make([]map[string]interface{}, 0, len(groups))
	for _, g := range groups {
		if opts.Color == "" {
			values = append(values, map[string]interface{}{xField.Name: g.Key, yName: g.Value})
			continue
		}
		for _, sg := range g.SubGroups {
			values = append(values, map[string]interface{}{
				xField.Name: g.Key,
				opts.Color:  sg.Key,
				yName:       sg.Value,
			})
		}
	}

	x := Channel{Field: xField.Name, Type: AxisType(xField.Type)}
	y := Channel{Field: yName, Type: "quantitative", Title: yTitle}
	enc := Encoding{X: &x, Y: &y, Tooltip: []Channel{x, y}}
	if opts.Color != "" {
		c := Channel{Field: opts.Color, Type: AxisType(s.TypeOf(opts.Color))}
		enc.Color = &c
		enc.Tooltip = append(enc.Tooltip, c)
	}

	return &ChartSpec{
		Schema:   VegaLiteSchema,
		Mark:     mark,
		Data:     ChartData{Values: values},
		Encoding: enc,
	}, nil
}
