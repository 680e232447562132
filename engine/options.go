package engine

import "log/slog"

// ============================================================================
// ENGINE OPTIONS — Functional options for Compile/Filter/Execute
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Logger          *slog.Logger
	StrictOperators bool // unknown operators fail compilation instead of passing every row
}

// WithLogger routes engine logging to l. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.Logger = l
	}
}

// WithStrictOperators rejects operators outside the catalog with an
// UnknownOperatorError. Without it an unknown operator matches every row
// that has a value for the field.
func WithStrictOperators() Option {
	return func(c *config) {
		c.StrictOperators = true
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
