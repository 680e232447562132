package schema

import (
	"strings"
	"time"

	"github.com/spektr-org/tabula/dataset"
)

// Infer determines the semantic type of one cell. Precedence is strict:
// null → string, bool → boolean, number → number, date or date-like text →
// date, anything else → string. Numeric-looking text stays a string; the
// loader is responsible for producing native numbers.
func Infer(v dataset.Value) FieldType {
	switch v.Kind() {
	case dataset.KindNull:
		return TypeString
	case dataset.KindBool:
		return TypeBoolean
	case dataset.KindNumber:
		return TypeNumber
	case dataset.KindDate:
		return TypeDate
	}
	if IsDate(v.Text()) {
		return TypeDate
	}
	return TypeString
}

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2006",
	"January 2006",
	time.RFC1123,
	time.RFC1123Z,
	"2006",
}

// ParseDate parses s as a calendar date or date-time.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func IsDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}
