package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peopleCSV = `name,age,joined,active
Ann,30,2024-01-05,true
Bo,17,2023-11-20,false
Cy,,2024-02-01,true
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSchemaCommand(t *testing.T) {
	path := writeFixture(t, "people.csv", peopleCSV)

	out, _, err := run(t, "schema", path, "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "field,type,operators\n"+
		"name,string,\"equals, contains, starts_with, ends_with\"\n"+
		"age,number,\"equals, greater_than, less_than, between\"\n"+
		"joined,date,\"equals, greater_than, less_than, between\"\n"+
		"active,boolean,equals\n", out)
}

func TestFilterCommandTable(t *testing.T) {
	path := writeFixture(t, "people.csv", peopleCSV)

	out, _, err := run(t, "filter", path, "--where", "age > 18")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann")
	assert.NotContains(t, out, "Bo")
	assert.Contains(t, out, "1 of 3 rows matched")
}

func TestFilterCommandJSON(t *testing.T) {
	path := writeFixture(t, "people.csv", peopleCSV)
	qpath := writeFixture(t, "q.json", "```json\n"+`[{"field":"name","operator":"contains","value":"O"}]`+"\n```")

	out, _, err := run(t, "filter", path, "-q", qpath, "-o", "json")
	require.NoError(t, err)

	var res struct {
		Total   int                      `json:"total"`
		Matched int                      `json:"matched"`
		Rows    []map[string]interface{} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Matched)
	assert.Equal(t, "Bo", res.Rows[0]["name"])
}

func TestFilterCommandMalformedRange(t *testing.T) {
	path := writeFixture(t, "people.csv", peopleCSV)
	qpath := writeFixture(t, "q.json", `[{"field":"age","operator":"between","value":"notjson"}]`)

	out, _, err := run(t, "filter", path, "-q", qpath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age")
	assert.Empty(t, out)
}

func TestFilterCommandWarnsOnSchemaMismatch(t *testing.T) {
	path := writeFixture(t, "people.csv", peopleCSV)

	_, stderr, err := run(t, "filter", path, "-w", "height > 2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "height")
}

func TestFilterCommandStrictOperators(t *testing.T) {
	path := writeFixture(t, "people.csv", peopleCSV)
	qpath := writeFixture(t, "q.json", `[{"field":"name","operator":"sounds_like","value":"x"}]`)

	_, _, err := run(t, "filter", path, "-q", qpath, "-o", "json")
	require.NoError(t, err)

	_, _, err = run(t, "filter", path, "-q", qpath, "--strict-operators")
	require.Error(t, err)
}

func TestChartCommand(t *testing.T) {
	path := writeFixture(t, "people.csv", peopleCSV)

	out, _, err := run(t, "chart", path, "--x", "active", "--y", "age", "--agg", "max")
	require.NoError(t, err)

	var spec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &spec))
	assert.Equal(t, "bar", spec["mark"])
	assert.Equal(t, "people.csv", spec["title"])

	out, _, err = run(t, "chart", path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &spec))
	assert.Equal(t, "bar", spec["mark"], "suggested from name + age")

	_, _, err = run(t, "chart", path, "--x", "active", "--agg", "p99")
	assert.Error(t, err)
}

func TestHealthCommand(t *testing.T) {
	path := writeFixture(t, "people.csv", peopleCSV)

	out, _, err := run(t, "health", path, "-o", "json")
	require.NoError(t, err)

	var report struct {
		Rows    int `json:"rows"`
		Metrics struct {
			Completeness float64 `json:"completeness"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.Rows)
	assert.InDelta(t, 91.67, report.Metrics.Completeness, 0.01)
}

func TestOperatorsCommand(t *testing.T) {
	out, _, err := run(t, "operators", "-o", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "date,greater_than,After\n")
	assert.Contains(t, out, "boolean,equals,Equals\n")
}

func TestUnsupportedFile(t *testing.T) {
	path := writeFixture(t, "people.xlsx", peopleCSV)
	_, _, err := run(t, "schema", path)
	assert.Error(t, err)
}
