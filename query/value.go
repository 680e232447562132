package query

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Value is the literal side of a condition: either a Scalar or a Range.
// The set of variants is closed.
type Value interface {
	// Text renders the value in its wire form.
	Text() string

	valueMarker()
}

// Scalar is a single literal as typed by the user.
type Scalar string

func (s Scalar) Text() string { return string(s) }
func (Scalar) valueMarker()   {}

// Range is the inclusive bound pair of a between condition. An empty or
// null bound is open (unbounded on that side) rather than coerced to 0, so
// {"min":"","max":"5"} matches everything up to 5.
type Range struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Text encodes the range as {"min":..,"max":..}.
func (r Range) Text() string {
	b, _ := json.Marshal(r)
	return string(b)
}

func (Range) valueMarker() {}

// ParseRange decodes a between literal. The object must carry both min and
// max keys; bounds may be JSON strings, numbers or null. Anything else is
// malformed.
func ParseRange(s string) (Range, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return Range{}, fmt.Errorf("range must be a JSON object with min and max: %w", err)
	}
	if raw == nil {
		return Range{}, errors.New("range must be a JSON object with min and max, got null")
	}

	minMsg, ok := raw["min"]
	if !ok {
		return Range{}, errors.New("range is missing min")
	}
	maxMsg, ok := raw["max"]
	if !ok {
		return Range{}, errors.New("range is missing max")
	}

	min, err := boundText(minMsg)
	if err != nil {
		return Range{}, fmt.Errorf("min: %w", err)
	}
	max, err := boundText(maxMsg)
	if err != nil {
		return Range{}, fmt.Errorf("max: %w", err)
	}
	return Range{Min: min, Max: max}, nil
}

func boundText(msg json.RawMessage) (string, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
		return "", nil
	}
	switch msg[0] {
	case '"':
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return "", err
		}
		return s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(msg), 64)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("unsupported bound %s", msg)
}

// EmptyValue is the reset value for a condition using op.
func EmptyValue(op Operator) Value {
	if op == Between {
		return Range{}
	}
	return Scalar("")
}
