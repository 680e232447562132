package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spektr-org/tabula/engine"
	"github.com/spektr-org/tabula/helpers"
	"github.com/spektr-org/tabula/internal/config"
	"github.com/spektr-org/tabula/internal/logger"
)

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	cfgFile string
	cfg     config.Config
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "tabula",
		Short: "tabula - filter and chart tabular files from the command line",
		Long: `tabula loads a CSV or JSON file (optionally .gz or .zst compressed),
infers a schema from its first row and runs typed filter conditions over it.

Conditions are written as "field operator value", e.g.
  tabula filter people.csv --where "age > 18" --where "name contains an"
  tabula filter sales.json --where 'amount between 10..20'

Settings can also come from ./tabula.yaml or TABULA_* environment
variables (TABULA_OUTPUT=json). Flags take precedence.
`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: a.configure,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./tabula.yaml when present)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text, json")
	flags.StringP("output", "o", "table", "output format: table, json, csv")
	flags.Int("limit", 50, "maximum rows to print, 0 for all")
	flags.Bool("strict-operators", false, "reject operators outside the catalog instead of ignoring them")

	cmd.AddCommand(
		a.schemaCmd(),
		a.filterCmd(),
		a.chartCmd(),
		a.healthCmd(),
		a.operatorsCmd(),
	)
	return cmd
}

// configure resolves config and installs the logger. Logs go to stderr so
// stdout stays machine-readable.
func (a *app) configure(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, cmd.ErrOrStderr())
	return nil
}

func (a *app) engineOptions() []engine.Option {
	opts := []engine.Option{engine.WithLogger(a.log)}
	if a.cfg.StrictOperators {
		opts = append(opts, engine.WithStrictOperators())
	}
	return opts
}

func (a *app) load(path string) (*helpers.Source, error) {
	src, err := helpers.LoadFile(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("source loaded",
		"id", src.ID, "name", src.Name, "rows", len(src.Rows), "fields", len(src.Schema.Fields))
	return src, nil
}
