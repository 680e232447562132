package engine

import (
	"github.com/spektr-org/tabula/dataset"
	"github.com/spektr-org/tabula/query"
	"github.com/spektr-org/tabula/schema"
)

// ============================================================================
// TABULA ENGINE TYPES
// ============================================================================
// Spec   — what Execute should compute (conditions + presentation)
// Result — render-ready output handed to a table or chart renderer
// Group  — intermediate aggregation result
// ============================================================================

// ============================================================================
// SPEC — Contract between callers (CLI, editors) and Execute
// ============================================================================

// Spec defines what the engine should compute.
type Spec struct {
	Conditions []query.RawCondition `json:"conditions"`
	Chart      *ChartOptions        `json:"chart,omitempty"`
	Limit      int                  `json:"limit"` // table rows, 0 = all
	Title      string               `json:"title"`
}

// ============================================================================
// RESULT — Render-ready output
// ============================================================================

// Result is the engine's render-ready output.
type Result struct {
	Success bool           `json:"success"`
	Title   string         `json:"title,omitempty"`
	Fields  []schema.Field `json:"fields"`
	Total   int            `json:"total"`
	Matched int            `json:"matched"`

	Table *TableData `json:"table,omitempty"`
	Chart *ChartSpec `json:"chart,omitempty"`

	// Rows are the matching rows, in input order.
	Rows []dataset.Row `json:"-"`

	Errors []string `json:"errors,omitempty"`
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
type Group struct {
	Key       string       `json:"key"`
	Label     string       `json:"label"`
	Value     float64      `json:"value"`
	Count     int          `json:"count"`
	SubGroups []Group      `json:"subGroups,omitempty"`
	View      dataset.View `json:"-"` // rows in this group (zero-copy)
}

// ============================================================================
// CHART TYPES — Vega-Lite shaped so renderers can take it as is
// ============================================================================

// VegaLiteSchema is the $schema URL stamped on every chart.
const VegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// ChartOptions selects a chart explicitly.
type ChartOptions struct {
	Mark        string      `json:"mark"` // bar, line, area, point, circle
	XField      string      `json:"x"`
	YField      string      `json:"y,omitempty"`
	Aggregation Aggregation `json:"aggregation,omitempty"`
	Color       string      `json:"color,omitempty"`
	SortBy      string      `json:"sortBy,omitempty"`
	Limit       int         `json:"limit,omitempty"` // x categories, 0 = all
}

// ChartSpec is a Vega-Lite chart description.
type ChartSpec struct {
	Schema   string    `json:"$schema"`
	Title    string    `json:"title,omitempty"`
	Mark     string    `json:"mark"`
	Data     ChartData `json:"data"`
	Encoding Encoding  `json:"encoding"`
}

// ChartData carries inline values, one map per plotted datum.
type ChartData struct {
	Values []map[string]interface{} `json:"values"`
}

// Encoding maps data fields to visual channels.
type Encoding struct {
	X       *Channel  `json:"x,omitempty"`
	Y       *Channel  `json:"y,omitempty"`
	Color   *Channel  `json:"color,omitempty"`
	Text    *Channel  `json:"text,omitempty"`
	Tooltip []Channel `json:"tooltip,omitempty"`
}

// Channel is one encoding channel.
type Channel struct {
	Field string `json:"field"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string           `json:"key"`
	Label string           `json:"label"`
	Type  schema.FieldType `json:"type"`
	Align string           `json:"align"` // "left", "right"
}

// Summary describes how much of the data a table shows.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
