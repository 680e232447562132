package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/schema"
)

// ============================================================================
// COERCION — How row values and typed literals are compared
// ============================================================================
// Ordering (greater_than, less_than, between) works on numbers:
//   number → itself, bool → 1/0, date → epoch milliseconds,
//   text   → decimal literal, else date-like text → epoch milliseconds,
//   else NaN. Any comparison with NaN is false.
// Equality is loose: identical text, or equal finite numbers, or equal
// instants when both sides are dates.
// ============================================================================

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseDecimal parses plain decimal notation only; "inf", "NaN", hex and
// empty text are not numbers.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// numericText coerces a typed literal for ordering comparisons.
func numericText(s string) float64 {
	if f, ok := parseDecimal(s); ok {
		return f
	}
	if t, ok := schema.ParseDate(s); ok {
		return float64(t.UnixMilli())
	}
	return math.NaN()
}

// numeric coerces a row value for ordering comparisons.
func numeric(v dataset.Value) float64 {
	switch v.Kind() {
	case dataset.KindNumber:
		f, _ := v.Float()
		return f
	case dataset.KindBool:
		if b, _ := v.Boolean(); b {
			return 1
		}
		return 0
	case dataset.KindDate:
		t, _ := v.Time()
		return float64(t.UnixMilli())
	case dataset.KindString:
		return numericText(v.Text())
	}
	return math.NaN()
}

// literal is an equality operand prepared once per condition.
type literal struct {
	text   string
	num    float64
	isNum  bool
	millis int64
	isDate bool
}

func newLiteral(s string) literal {
	l := literal{text: s}
	l.num, l.isNum = parseDecimal(s)
	if t, ok := schema.ParseDate(s); ok {
		l.millis, l.isDate = t.UnixMilli(), true
	}
	return l
}

// looseEqual compares a row value with a literal.
func looseEqual(v dataset.Value, l literal) bool {
	text := v.Text()
	if text == l.text {
		return true
	}
	if l.isNum {
		var f float64
		var ok bool
		if v.Kind() == dataset.KindNumber {
			f, ok = v.Float()
		} else if v.Kind() == dataset.KindString {
			f, ok = parseDecimal(text)
		}
		if ok && !math.IsInf(f, 0) && f == l.num {
			return true
		}
	}
	if l.isDate && v.Kind() == dataset.KindDate {
		t, _ := v.Time()
		return t.UnixMilli() == l.millis
	}
	return false
}
