package query

// ============================================================================
// CONDITION — One leaf filter on a single field
// ============================================================================
// Two forms exist:
//   RawCondition — wire shape, value always a string (JSON for between)
//   Condition    — decoded shape, value is a Scalar or a Range
// A Query is an ordered []Condition combined with AND.
// ============================================================================

// Condition is a decoded leaf filter.
type Condition struct {
	Field    string
	Operator Operator
	Value    Value
}

// Query is an ordered, AND-combined list of conditions.
type Query []Condition

// RawCondition is the wire form exchanged with editors and query files.
type RawCondition struct {
	Field    string   `json:"field" msgpack:"field"`
	Operator Operator `json:"operator" msgpack:"operator"`
	Value    string   `json:"value" msgpack:"value"`
}

// Text returns the literal in wire form. A nil value renders as "".
func (c Condition) Text() string {
	if c.Value == nil {
		return ""
	}
	return c.Value.Text()
}

// Raw converts the condition back to its wire form.
func (c Condition) Raw() RawCondition {
	return RawCondition{Field: c.Field, Operator: c.Operator, Value: c.Text()}
}

// Decode converts a wire condition found at position index of its query.
// A between value must parse as a range; every other operator keeps the
// string as a Scalar.
func Decode(index int, raw RawCondition) (Condition, error) {
	c := Condition{Field: raw.Field, Operator: raw.Operator}
	if raw.Operator != Between {
		c.Value = Scalar(raw.Value)
		return c, nil
	}

	r, err := ParseRange(raw.Value)
	if err != nil {
		return Condition{}, &MalformedRangeError{Index: index, Field: raw.Field, Value: raw.Value, Err: err}
	}
	c.Value = r
	return c, nil
}

// DecodeAll decodes a whole wire query. It stops at the first malformed
// condition; nothing is returned for a partially valid query.
func DecodeAll(raws []RawCondition) (Query, error) {
	q := make(Query, 0, len(raws))
	for i, raw := range raws {
		c, err := Decode(i, raw)
		if err != nil {
			return nil, err
		}
		q = append(q, c)
	}
	return q, nil
}

// Encode converts a query to wire form.
func (q Query) Encode() []RawCondition {
	out := make([]RawCondition, len(q))
	for i, c := range q {
		out[i] = c.Raw()
	}
	return out
}
