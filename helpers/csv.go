package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spektr-org/tabula/dataset"
)

// ============================================================================
// CSV HELPER — Parses CSV data into []dataset.Row
// ============================================================================
// First record is the header. Cells are trimmed and dynamically typed:
//   ""               → null
//   true/TRUE/false  → bool
//   plain decimal    → number (beyond 2^53 stays text)
//   ISO date-time    → date (must carry a T and a zone)
//   anything else    → string
// Date-only text stays a string; schema inference recognizes it later.
// Lines whose cells are all empty are skipped.
// ============================================================================

var (
	csvFloat   = regexp.MustCompile(`^-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?$`)
	csvISODate = regexp.MustCompile(`^\d{4}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d(:[0-5]\d(\.\d+)?)?([+-][0-2]\d:[0-5]\d|Z)$`)
)

const maxExactFloat = 1 << 53

// ParseCSV parses CSV bytes into rows keyed by the trimmed header names.
// Short records leave their trailing fields absent; extra cells are dropped.
func ParseCSV(data []byte) ([]dataset.Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Read header
	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	headers[0] = strings.TrimPrefix(headers[0], "\ufeff")

	if len(headers) == 1 && strings.ContainsAny(headers[0], ";\t") {
		return nil, fmt.Errorf("%w: header %q", ErrDelimiter, headers[0])
	}

	var rows []dataset.Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		if blankRecord(record) {
			continue
		}

		n := len(record)
		if n > len(headers) {
			n = len(headers)
		}
		keys := headers[:n]
		values := make([]dataset.Value, n)
		for i := 0; i < n; i++ {
			values[i] = TypeCell(record[i])
		}
		rows = append(rows, dataset.NewRow(keys, values))
	}

	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

// TypeCell converts one raw cell into a typed value.
func TypeCell(raw string) dataset.Value {
	s := strings.TrimSpace(raw)
	switch s {
	case "":
		return dataset.Null()
	case "true", "TRUE":
		return dataset.Bool(true)
	case "false", "FALSE":
		return dataset.Bool(false)
	}

	if csvFloat.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f > -maxExactFloat && f < maxExactFloat {
			return dataset.Number(f)
		}
		return dataset.String(s)
	}

	if csvISODate.MatchString(s) {
		if t, ok := parseISO(s); ok {
			return dataset.Date(t, s)
		}
	}

	return dataset.String(s)
}

func parseISO(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04Z07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
