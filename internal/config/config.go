package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TABULA_LOG_LEVEL.
const EnvPrefix = "TABULA"

// Config is the resolved CLI configuration. Precedence, highest first:
// flags, environment, config file, defaults.
type Config struct {
	LogLevel        string `mapstructure:"log-level"`
	LogFormat       string `mapstructure:"log-format"`
	Output          string `mapstructure:"output"`
	Limit           int    `mapstructure:"limit"`
	StrictOperators bool   `mapstructure:"strict-operators"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Output:    "table",
		Limit:     50,
	}
}

var (
	outputs    = map[string]bool{"table": true, "json": true, "csv": true}
	logFormats = map[string]bool{"text": true, "json": true}
)

// Load resolves configuration into a fresh viper instance. cfgFile may be
// empty, in which case ./tabula.{yaml,json,toml} is used when present.
// flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)
	v.SetDefault("output", d.Output)
	v.SetDefault("limit", d.Limit)
	v.SetDefault("strict-operators", d.StrictOperators)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("tabula")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the CLI cannot act on.
func (c Config) Validate() error {
	if !outputs[c.Output] {
		return fmt.Errorf("invalid output %q (want table, json or csv)", c.Output)
	}
	if !logFormats[c.LogFormat] {
		return fmt.Errorf("invalid log format %q (want text or json)", c.LogFormat)
	}
	if c.Limit < 0 {
		return fmt.Errorf("invalid limit %d", c.Limit)
	}
	return nil
}
