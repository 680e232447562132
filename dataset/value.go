package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// VALUE — Discriminated scalar produced by the loader boundary
// ============================================================================
// Loaders convert raw cells into one of five kinds before any inference or
// filtering runs. Everything downstream matches on Kind instead of probing
// dynamic types.
// ============================================================================

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

var kindNames = [...]string{"null", "string", "number", "bool", "date"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is an immutable scalar cell. The zero Value is Null.
type Value struct {
	kind Kind
	str  string // string payload, or the raw text a date was parsed from
	num  float64
	b    bool
	t    time.Time
}

// Null returns the missing value.
func Null() Value { return Value{} }

// String wraps a text cell.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a numeric cell.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool wraps a boolean cell.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date wraps a timestamp. raw is the text it was read from and may be empty.
func Date(t time.Time, raw string) Value { return Value{kind: KindDate, t: t, str: raw} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text renders the value the way it is shown to users and compared as a
// string: numbers in shortest decimal form, bools as true/false, dates as
// their source text (RFC3339 when there is none). Null renders as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return FormatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		if v.str != "" {
			return v.str
		}
		return v.t.Format(time.RFC3339)
	}
	return ""
}

// Float returns the numeric payload of a Number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Time returns the payload of a Date.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.t, true
}

// Boolean returns the payload of a Bool.
func (v Value) Boolean() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Interface converts the value back to a plain Go scalar (nil, string,
// float64, bool, time.Time) for encoders that want untyped data.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindDate:
		return v.t
	}
	return nil
}

// FormatNumber renders f without trailing zeros: 30 → "30", 2.50 → "2.5".
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	s = strings.Replace(s, "e+0", "e+", 1)
	return strings.Replace(s, "e-0", "e-", 1)
}
