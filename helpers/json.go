package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spektr-org/tabula/dataset"
)

// ParseJSON parses a JSON array of objects into rows. Object key order is
// preserved. Nested objects and arrays are kept as their compact JSON text.
// JSON strings are not re-typed; only CSV cells get dynamic typing.
func ParseJSON(data []byte) ([]dataset.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, ErrNotArray
	}

	var rows []dataset.Row
	for dec.More() {
		row, err := decodeObject(dec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

func decodeObject(dec *json.Decoder) (dataset.Row, error) {
	tok, err := dec.Token()
	if err != nil {
		return dataset.Row{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return dataset.Row{}, ErrNotArray
	}

	var row dataset.Row
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return dataset.Row{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return dataset.Row{}, fmt.Errorf("field %q: %w", key, err)
		}
		v, err := jsonValue(raw)
		if err != nil {
			return dataset.Row{}, fmt.Errorf("field %q: %w", key, err)
		}
		row.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return dataset.Row{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return row, nil
}

func jsonValue(raw json.RawMessage) (dataset.Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return dataset.Null(), nil
	}

	switch trimmed[0] {
	case 'n':
		return dataset.Null(), nil
	case 't':
		return dataset.Bool(true), nil
	case 'f':
		return dataset.Bool(false), nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return dataset.Value{}, err
		}
		return dataset.String(s), nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return dataset.Value{}, err
		}
		return dataset.String(buf.String()), nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return dataset.Value{}, err
	}
	f, err := n.Float64()
	if err != nil {
		return dataset.Value{}, err
	}
	return dataset.Number(f), nil
}
