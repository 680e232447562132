package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/schema"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via dataset.View
// ============================================================================
// Grouping produces SubViews (index lists into parent view).
// Measures are coerced like ordering comparisons; values that do not
// coerce to a number are skipped rather than counted as zero.
// ============================================================================

// Aggregation names how a group's measure collapses to one number.
type Aggregation string

const (
	AggCount  Aggregation = "count"
	AggSum    Aggregation = "sum"
	AggMean   Aggregation = "mean"
	AggMin    Aggregation = "min"
	AggMax    Aggregation = "max"
	AggMedian Aggregation = "median"
)

// Aggregations lists the supported aggregations in display order.
func Aggregations() []Aggregation {
	return []Aggregation{AggCount, AggSum, AggMean, AggMin, AggMax, AggMedian}
}

// ParseAggregation validates s. An empty string selects count.
func ParseAggregation(s string) (Aggregation, error) {
	if s == "" {
		return AggCount, nil
	}
	a := Aggregation(strings.ToLower(strings.TrimSpace(s)))
	if a == "avg" || a == "average" {
		return AggMean, nil
	}
	for _, known := range Aggregations() {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown aggregation %q", s)
}

// GroupAndAggregate is the main entry point for the aggregation pipeline.
// Pipeline: group → aggregate → sort → limit.
// With a second grouping field each group carries SubGroups.
func GroupAndAggregate(
	view dataset.View,
	groupBy []string,
	measure string,
	aggregation Aggregation,
	sortBy string,
	limit int,
) []Group {
	if view.Len() == 0 {
		return nil
	}

	// 1. Group
	var groups []Group
	switch len(groupBy) {
	case 0:
		groups = []Group{{Key: "all", Label: "Total", View: view}}
	case 1:
		groups = groupBySingle(view, groupBy[0])
	default:
		groups = groupByMulti(view, groupBy)
	}

	// 2. Aggregate
	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
		for j := range groups[i].SubGroups {
			aggregateGroup(&groups[i].SubGroups[j], measure, aggregation)
		}
	}

	// 3. Sort
	SortGroups(groups, sortBy)

	// 4. Limit
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

func groupBySingle(view dataset.View, field string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := groupKey(view.Row(i), field)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		label := key
		if label == "" {
			label = "(empty)"
		}
		groups = append(groups, Group{
			Key:   key,
			Label: label,
			View:  dataset.NewSubView(view, grouped[key]),
		})
	}
	return groups
}

func groupByMulti(view dataset.View, fields []string) []Group {
	primaryGroups := groupBySingle(view, fields[0])
	for i := range primaryGroups {
		primaryGroups[i].SubGroups = groupBySingle(primaryGroups[i].View, fields[1])
	}
	return primaryGroups
}

// groupKey is the text of a field; missing and null values share "".
func groupKey(row dataset.Row, field string) string {
	v, ok := row.Lookup(field)
	if !ok {
		return ""
	}
	return v.Text()
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string, aggregation Aggregation) {
	group.Count = group.View.Len()
	if group.Count == 0 {
		return
	}

	if aggregation == AggCount || measure == "" {
		group.Value = float64(group.Count)
		return
	}

	vals := MeasureValues(group.View, measure)
	switch aggregation {
	case AggSum:
		group.Value = sum(vals)
	case AggMean:
		group.Value = mean(vals)
	case AggMin:
		group.Value = extreme(vals, func(a, b float64) bool { return a < b })
	case AggMax:
		group.Value = extreme(vals, func(a, b float64) bool { return a > b })
	case AggMedian:
		group.Value = median(vals)
	default:
		group.Value = sum(vals)
	}
}

// MeasureValues collects the numeric values of a field across a view.
func MeasureValues(view dataset.View, measure string) []float64 {
	vals := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		v, ok := view.Row(i).Lookup(measure)
		if !ok {
			continue
		}
		if f := numeric(v); !math.IsNaN(f) {
			vals = append(vals, f)
		}
	}
	return vals
}

func sum(vals []float64) float64 {
	var total float64
	for _, v := range vals {
		total += v
	}
	return total
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return sum(vals) / float64(len(vals))
}

func extreme(vals []float64, better func(a, b float64) bool) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if better(v, m) {
			m = v
		}
	}
	return m
}

func median(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts aggregate groups by the specified sort mode.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case "value_desc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case "value_asc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	case "chronological":
		sort.SliceStable(groups, func(i, j int) bool { return sortableKey(groups[i].Key) < sortableKey(groups[j].Key) })
	case "reverse_chronological":
		sort.SliceStable(groups, func(i, j int) bool { return sortableKey(groups[i].Key) > sortableKey(groups[j].Key) })
	case "label_asc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key) })
	case "label_desc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) > strings.ToLower(groups[j].Key) })
	default:
		// preserve grouping order
	}
}

// sortableKey orders date and number keys by value; other keys sort last.
func sortableKey(key string) float64 {
	if f := numericText(key); !math.IsNaN(f) {
		return f
	}
	return math.Inf(1)
}

// ============================================================================
// LABELS
// ============================================================================

// LabelForAggregation returns a human-readable label for an aggregation.
func LabelForAggregation(a Aggregation) string {
	switch a {
	case AggCount:
		return "Count"
	case AggSum:
		return "Sum"
	case AggMean:
		return "Average"
	case AggMin:
		return "Minimum"
	case AggMax:
		return "Maximum"
	case AggMedian:
		return "Median"
	default:
		return "Value"
	}
}

// AxisType maps a field type to the encoding type a chart renderer expects.
func AxisType(t schema.FieldType) string {
	switch t {
	case schema.TypeNumber:
		return "quantitative"
	case schema.TypeDate:
		return "temporal"
	default:
		return "nominal"
	}
}
