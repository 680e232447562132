package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabula.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\nlimit: 5\nlog-level: debug\n"), 0o600))

	t.Setenv("TABULA_LIMIT", "7")
	t.Setenv("TABULA_STRICT_OPERATORS", "true")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--log-level=error"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output, "file")
	assert.Equal(t, 7, cfg.Limit, "env over file")
	assert.True(t, cfg.StrictOperators, "env")
	assert.Equal(t, "error", cfg.LogLevel, "flag over file")
	assert.Equal(t, "text", cfg.LogFormat, "default")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Defaults()
	c.Output = "xml"
	assert.Error(t, c.Validate())

	c = Defaults()
	c.LogFormat = "logfmt"
	assert.Error(t, c.Validate())

	c = Defaults()
	c.Limit = -1
	assert.Error(t, c.Validate())
}
