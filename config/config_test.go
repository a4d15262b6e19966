package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flowsome/flowsome/executor"
	ftesting "github.com/flowsome/flowsome/testing"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const peopleCSV = "id;name;country;age\n1;Andreas;Cyprus;34\n2;Maria;Greece;29\n3;Eleni;Cyprus;41\n4;Joe;Malta;\n"

const pipelineTemplate = `
strategy: eager
partition_size: 2
writer_concurrency: 2
sources:
  - id: people
    path: %[1]s/people.csv
    header_lines: 1
    delimiter: ";"
    schema:
      - {name: id, type: int64}
      - {name: name, type: string}
      - {name: country, type: string}
      - {name: age, type: int64}
  - id: capitals
    schema:
      - {name: country, type: string}
      - {name: capital, type: string}
    rows:
      - [Cyprus, Nicosia]
      - [Greece, Athens]
steps:
  - id: adults
    input: people
    ops:
      - filter: {OR: [{age: {ge: 30}}, {country: {eq: Greece}}]}
      - cast: {age: float64}
      - sort: [{column: age, descending: true}]
  - id: joined
    merge:
      left: adults
      right: capitals
      how: left
      on: [country]
  - id: by_country
    input: joined
    ops:
      - group_by:
          keys: [country, capital]
          aggregations:
            - {func: count, output: people}
            - {func: mean, input: age}
      - sort: [country]
sinks:
  - id: json
    input: by_country
    path: %[1]s/out/by_country.jsonl
  - id: db
    input: joined
    driver: sqlite3
    dsn: %[1]s/out.db
    table: adults
    mode: replace
  - id: s3
    input: adults
    path: s3://lake/adults.tsv
`

func writePipeline(t *testing.T) string {
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "people.csv"), []byte(peopleCSV), 0o644))
	path := filepath.Join(dir, "pipeline.yaml")
	require.Nil(t, os.WriteFile(path, []byte(fmt.Sprintf(pipelineTemplate, dir)), 0o644))
	return path
}

func TestLoadAndRun(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
	path := writePipeline(t)
	def, err := Load(path)
	require.Nil(t, err)
	store := ftesting.CreateMemoryObjectStore()
	pipe, err := def.Build(&BuildOptions{ObjectStore: store})
	require.Nil(t, err)
	res, err := pipe.Run(context.Background())
	require.Nil(t, err)

	require.Equal(t, [][]interface{}{
		{"Cyprus", "Nicosia", int64(2), 37.5},
		{"Greece", "Athens", int64(1), 29.0},
	}, ftesting.Rows(res.Tables["json"]))
	out, err := os.ReadFile(filepath.Join(filepath.Dir(path), "out", "by_country.jsonl"))
	require.Nil(t, err)
	require.Equal(t,
		`{"country":"Cyprus","capital":"Nicosia","people":2,"age_mean":37.5}`+"\n"+
			`{"country":"Greece","capital":"Athens","people":1,"age_mean":29}`+"\n",
		string(out))

	tsv, ok := store.Get("lake", "adults.tsv")
	require.True(t, ok)
	require.Equal(t, "id\tname\tcountry\tage\n3\tEleni\tCyprus\t41\n1\tAndreas\tCyprus\t34\n2\tMaria\tGreece\t29\n", string(tsv))

	db, err := sql.Open("sqlite3", filepath.Join(filepath.Dir(path), "out.db"))
	require.Nil(t, err)
	defer db.Close()
	var count int
	require.Nil(t, db.QueryRow(`SELECT COUNT(*) FROM "adults" WHERE "capital" IS NOT NULL`).Scan(&count))
	require.Equal(t, 3, count)
}

func TestExecutorOverride(t *testing.T) {
	def, err := Load(writePipeline(t))
	require.Nil(t, err)
	opts, err := def.ExecutorOptions()
	require.Nil(t, err)
	require.Equal(t, executor.Eager, opts.Strategy)
	require.Equal(t, 2, opts.PartitionSize)

	pipe, err := def.Build(&BuildOptions{
		Executor:    &executor.Options{Strategy: executor.SinglePass},
		ObjectStore: ftesting.CreateMemoryObjectStore(),
	})
	require.Nil(t, err)
	plans, err := pipe.Explain()
	require.Nil(t, err)
	require.Len(t, plans, 3)
}

func TestValidationCollectsErrors(t *testing.T) {
	_, err := Parse([]byte(`
strategy: sideways
sources:
  - id: a
    path: data.xlsx
    schema:
      - {name: x, type: complex}
  - id: a
    driver: oracle
    schema:
      - {name: x, type: int64}
steps:
  - id: s
    input: missing
    ops:
      - {limit: 1, select: [x]}
      - {}
  - id: m
    merge: {left: a, right: nowhere, how: sideways}
sinks:
  - id: out
    input: s
`))
	require.NotNil(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	msg := err.Error()
	for _, expected := range []string{
		"execution strategy",
		"Unsupported format",
		"column x",
		`id "a" is used more than once`,
		"oracle",
		`unknown id "missing"`,
		"exactly one transformation",
		"operation is empty",
		`unknown id "nowhere"`,
		"join kind",
		"sink out: path is required",
	} {
		require.True(t, strings.Contains(msg, expected), "missing %q in %s", expected, msg)
	}
	require.GreaterOrEqual(t, len(merr.Errors), 11)
}

func TestDelimiterOptionsRequireDelimitedFormat(t *testing.T) {
	_, err := Parse([]byte(`
sources:
  - id: events
    path: events.jsonl
    delimiter: ";"
    schema:
      - {name: x, type: int64}
sinks:
  - id: out
    input: events
    path: out.parquet
    no_header: true
`))
	require.NotNil(t, err)
	msg := err.Error()
	require.Contains(t, msg, "source events: delimiter, header_lines and lazy_quotes only apply to delimited formats, not jsonl")
	require.Contains(t, msg, "sink out: delimiter and no_header only apply to delimited formats, not parquet")

	_, err = Parse([]byte(`
sources:
  - id: people
    path: people.tsv
    header_lines: 1
    lazy_quotes: true
    schema:
      - {name: x, type: int64}
sinks:
  - id: out
    input: people
    path: out.csv
    delimiter: "|"
    no_header: true
`))
	require.Nil(t, err)
}

func TestUnknownFieldsRejected(t *testing.T) {
	_, err := Parse([]byte("sources: []\nsinkz: []\n"))
	require.NotNil(t, err)
}
