package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/spektr-org/tabula/engine"
	"github.com/spektr-org/tabula/query"
	"github.com/spektr-org/tabula/schema"
)

// ============================================================================
// OUTPUT — table (terminal), json (full payload), csv (Sheets-ready)
// ============================================================================

func render(w io.Writer, format string, payload interface{}, header []string, rows [][]string) error {
	switch format {
	case "json":
		return writeJSON(w, payload)
	case "csv":
		return writeCSV(w, header, rows)
	default:
		writeTable(w, header, rows)
		return nil
	}
}

func writeTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}

// rowsJSON shapes a filter result for JSON output: the matching rows as
// ordered objects, capped like the table.
func rowsJSON(res *engine.Result) interface{} {
	rows := make([]map[string]interface{}, 0, len(res.Table.Rows))
	for i := range res.Table.Rows {
		rows = append(rows, res.Rows[i].Map())
	}
	return struct {
		Total   int                      `json:"total"`
		Matched int                      `json:"matched"`
		Fields  []schema.Field           `json:"fields"`
		Rows    []map[string]interface{} `json:"rows"`
		Errors  []string                 `json:"errors,omitempty"`
	}{res.Total, res.Matched, res.Fields, rows, res.Errors}
}

func heading(w io.Writer, format string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(w, format+"\n", args...)
}

func warn(w io.Writer, problems []string) {
	yellow := color.New(color.FgYellow)
	for _, p := range problems {
		yellow.Fprintln(w, "warning:", p)
	}
}

func joinOperators(t schema.FieldType) string {
	ops := query.OperatorsFor(t)
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}
