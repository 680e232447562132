package query

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// ============================================================================
// TEXT FORMS — Conditions typed on a command line or stored in query files
// ============================================================================
//   ParseExpr("age greater_than 18")   → Condition
//   ParseExpr("age between 10..20")    → Condition with Range{10, 20}
//   ParseQuery(`[{"field":..}]`)       → []RawCondition
// ============================================================================

var operatorAliases = map[string]Operator{
	"=":  Equals,
	"==": Equals,
	">":  GreaterThan,
	"<":  LessThan,
	"~":  Contains,
	"^=": StartsWith,
	"$=": EndsWith,
}

func lookupOperator(tok string) (Operator, bool) {
	if op, ok := operatorAliases[tok]; ok {
		return op, true
	}
	op := Operator(strings.ToLower(tok))
	return op, Known(op)
}

// ParseExpr parses "<field> <operator> <value>". The field may contain
// spaces; the first token naming an operator ends it. Operators are the
// catalog names or the aliases = == > < ~ ^= $=. A between value is written
// "min..max" (either side may be empty) or as a JSON range object.
func ParseExpr(expr string) (Condition, error) {
	tokens := tokenize(expr)
	for i := 1; i < len(tokens); i++ {
		op, ok := lookupOperator(tokens[i].text)
		if !ok {
			continue
		}
		field := strings.TrimSpace(expr[:tokens[i].start])
		value := strings.TrimSpace(expr[tokens[i].end:])
		return buildCondition(field, op, value)
	}
	return Condition{}, fmt.Errorf("expression %q: expected <field> <operator> <value>", expr)
}

func buildCondition(field string, op Operator, value string) (Condition, error) {
	c := Condition{Field: unquote(field), Operator: op}
	if op != Between {
		c.Value = Scalar(unquote(value))
		return c, nil
	}

	if strings.HasPrefix(value, "{") {
		r, err := ParseRange(value)
		if err != nil {
			return Condition{}, &MalformedRangeError{Field: c.Field, Value: value, Err: err}
		}
		c.Value = r
		return c, nil
	}

	min, max, found := strings.Cut(value, "..")
	if !found {
		return Condition{}, &MalformedRangeError{Field: c.Field, Value: value,
			Err: fmt.Errorf("expected min..max")}
	}
	c.Value = Range{Min: strings.TrimSpace(min), Max: strings.TrimSpace(max)}
	return c, nil
}

// ParseQuery reads a JSON query file: either an array of raw conditions or
// an object with a "conditions" array. Markdown code fences are tolerated.
func ParseQuery(data []byte) ([]RawCondition, error) {
	text := strings.TrimSpace(string(data))
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, nil
	}

	if strings.HasPrefix(text, "{") {
		var wrapper struct {
			Conditions []RawCondition `json:"conditions"`
		}
		if err := json.Unmarshal([]byte(text), &wrapper); err != nil {
			return nil, fmt.Errorf("failed to parse query: %w", err)
		}
		return wrapper.Conditions, nil
	}

	var raws []RawCondition
	if err := json.Unmarshal([]byte(text), &raws); err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}
	return raws, nil
}

type token struct {
	text       string
	start, end int
}

func tokenize(s string) []token {
	var tokens []token
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, token{text: s[start:i], start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: s[start:], start: start, end: len(s)})
	}
	return tokens
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
