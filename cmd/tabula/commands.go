package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/tabula/engine"
	"github.com/spektr-org/tabula/query"
	"github.com/spektr-org/tabula/schema"
)

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema FILE",
		Short: "Print the fields and types inferred from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.load(args[0])
			if err != nil {
				return err
			}

			header := []string{"field", "type", "operators"}
			rows := make([][]string, 0, len(src.Schema.Fields))
			for _, f := range src.Schema.Fields {
				rows = append(rows, []string{f.Name, string(f.Type), joinOperators(f.Type)})
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, src.Schema, header, rows)
		},
	}
}

func (a *app) filterCmd() *cobra.Command {
	var (
		where     []string
		queryFile string
	)

	cmd := &cobra.Command{
		Use:   "filter FILE",
		Short: "Print the rows matching every condition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.load(args[0])
			if err != nil {
				return err
			}
			conds, err := collectConditions(where, queryFile)
			if err != nil {
				return err
			}

			res, err := engine.Execute(src.Schema, src.Rows,
				engine.Spec{Conditions: conds, Limit: a.cfg.Limit}, a.engineOptions()...)
			if err != nil {
				return err
			}
			warn(cmd.ErrOrStderr(), res.Errors)

			header := make([]string, len(res.Table.Columns))
			for i, c := range res.Table.Columns {
				header[i] = c.Label
			}
			if err := render(cmd.OutOrStdout(), a.cfg.Output, rowsJSON(res), header, res.Table.Rows); err != nil {
				return err
			}
			if a.cfg.Output == "table" {
				heading(cmd.OutOrStdout(), "%d of %d rows matched", res.Matched, res.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, `condition "field operator value" (repeatable)`)
	cmd.Flags().StringVarP(&queryFile, "query", "q", "", "JSON file holding a condition list")
	return cmd
}

func (a *app) chartCmd() *cobra.Command {
	var (
		where     []string
		queryFile string
		opts      engine.ChartOptions
		agg       string
	)

	cmd := &cobra.Command{
		Use:   "chart FILE",
		Short: "Print a Vega-Lite chart for the matching rows",
		Long: `Print a Vega-Lite chart for the matching rows.

Without --x a chart is suggested from the field types: text + number gives
a bar chart, date + number a line chart, two numbers a scatter plot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.load(args[0])
			if err != nil {
				return err
			}
			conds, err := collectConditions(where, queryFile)
			if err != nil {
				return err
			}
			if opts.Aggregation, err = engine.ParseAggregation(agg); err != nil {
				return err
			}

			chart := opts
			res, err := engine.Execute(src.Schema, src.Rows,
				engine.Spec{Conditions: conds, Chart: &chart, Title: src.Name}, a.engineOptions()...)
			if err != nil {
				return err
			}
			warn(cmd.ErrOrStderr(), res.Errors)
			if res.Chart == nil {
				return fmt.Errorf("no chart for an empty schema")
			}
			return writeJSON(cmd.OutOrStdout(), res.Chart)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&where, "where", "w", nil, `condition "field operator value" (repeatable)`)
	f.StringVarP(&queryFile, "query", "q", "", "JSON file holding a condition list")
	f.StringVar(&opts.Mark, "mark", "bar", "mark: bar, line, area, point, circle")
	f.StringVar(&opts.XField, "x", "", "x field (empty suggests a chart)")
	f.StringVar(&opts.YField, "y", "", "y field")
	f.StringVar(&agg, "agg", "count", "aggregation: count, sum, mean, min, max, median")
	f.StringVar(&opts.Color, "color", "", "field to split series by")
	f.StringVar(&opts.SortBy, "sort", "", "value_desc, value_asc, label_asc, label_desc, chronological")
	f.IntVar(&opts.Limit, "top", 0, "keep only the first N x values after sorting")
	return cmd
}

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health FILE",
		Short: "Report completeness and type consistency per field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.load(args[0])
			if err != nil {
				return err
			}

			metrics := schema.Health(src.Schema, src.Rows)
			profiles := schema.Profile(src.Schema, src.Rows)

			header := []string{"field", "type", "nulls", "unique", "mismatched", "cardinality"}
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				rows = append(rows, []string{
					p.Name, string(p.Type),
					fmt.Sprint(p.NullCount), fmt.Sprint(p.UniqueCount), fmt.Sprint(p.Mismatched),
					p.Cardinality,
				})
			}

			payload := struct {
				Source  string                `json:"source"`
				Rows    int                   `json:"rows"`
				Metrics schema.HealthMetrics  `json:"metrics"`
				Fields  []schema.FieldProfile `json:"fields"`
			}{src.Name, len(src.Rows), metrics, profiles}

			if err := render(cmd.OutOrStdout(), a.cfg.Output, payload, header, rows); err != nil {
				return err
			}
			if a.cfg.Output == "table" {
				heading(cmd.OutOrStdout(), "completeness %.1f%%  consistency %.1f%%",
					metrics.Completeness, metrics.Consistency)
			}
			return nil
		},
	}
}

func (a *app) operatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operators",
		Short: "List the operators available for each field type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			type entry struct {
				Type     schema.FieldType `json:"type"`
				Operator query.Operator   `json:"operator"`
				Label    string           `json:"label"`
			}

			var (
				entries []entry
				rows    [][]string
			)
			for _, t := range []schema.FieldType{schema.TypeString, schema.TypeNumber, schema.TypeDate, schema.TypeBoolean} {
				for _, op := range query.OperatorsFor(t) {
					label := query.Label(op, t)
					entries = append(entries, entry{t, op, label})
					rows = append(rows, []string{string(t), string(op), label})
				}
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, entries, []string{"type", "operator", "label"}, rows)
		},
	}
}

// collectConditions merges --query file conditions with --where expressions,
// file first.
func collectConditions(where []string, queryFile string) ([]query.RawCondition, error) {
	var conds []query.RawCondition
	if queryFile != "" {
		data, err := os.ReadFile(queryFile)
		if err != nil {
			return nil, fmt.Errorf("read query file: %w", err)
		}
		if conds, err = query.ParseQuery(data); err != nil {
			return nil, fmt.Errorf("query file %s: %w", queryFile, err)
		}
	}
	for _, expr := range where {
		c, err := query.ParseExpr(expr)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c.Raw())
	}
	return conds, nil
}
