// Package config decodes YAML pipeline definitions and builds them into runnable
// pipelines.
//
// A definition lists sources, steps and sinks, each with a unique id:
//
//	strategy: single_pass
//	sources:
//	  - id: orders
//	    path: data/orders-*.csv
//	    header_lines: 1
//	    schema:
//	      - {name: id, type: int64}
//	      - {name: country, type: string}
//	steps:
//	  - id: cyprus
//	    input: orders
//	    ops:
//	      - filter: {country: {eq: Cyprus}}
//	      - limit: 10
//	sinks:
//	  - id: out
//	    input: cyprus
//	    path: out/cyprus.jsonl
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/flowsome/flowsome/internal/objectstore"
	"gopkg.in/yaml.v3"
)

// Pipeline is the root of a YAML pipeline definition
type Pipeline struct {
	Strategy          string            `yaml:"strategy"`
	PartitionSize     int               `yaml:"partition_size"`
	IgnoreRowErrors   bool              `yaml:"ignore_row_errors"`
	WriterConcurrency int               `yaml:"writer_concurrency"`
	S3                *objectstore.Conf `yaml:"s3"`
	Sources           []Source          `yaml:"sources"`
	Steps             []Step            `yaml:"steps"`
	Sinks             []Sink            `yaml:"sinks"`
}

// Column is a named, typed entry in a source Schema
type Column struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // a type name understood by flowsome.ParseColumnType
}

// Source describes where a pipeline reads data from. A source with a driver reads from a
// database, a source with rows holds inline values, and any other source reads the files
// (or s3:// objects) matching path.
type Source struct {
	ID     string   `yaml:"id"`
	Path   string   `yaml:"path"`
	Format string   `yaml:"format"` // detected from the extension of path if omitted
	Schema []Column `yaml:"schema"`

	HeaderLines int    `yaml:"header_lines"`
	Delimiter   string `yaml:"delimiter"`
	Comment     string `yaml:"comment"`
	NilValue    string `yaml:"nil_value"`
	LazyQuotes  bool   `yaml:"lazy_quotes"`

	Driver string        `yaml:"driver"`
	DSN    string        `yaml:"dsn"`
	Query  string        `yaml:"query"`
	Table  string        `yaml:"table"`
	Args   []interface{} `yaml:"args"`

	Rows [][]interface{} `yaml:"rows"`
}

// Step transforms the output of one upstream node with a sequence of operations, or
// merges the outputs of two
type Step struct {
	ID    string      `yaml:"id"`
	Input string      `yaml:"input"`
	Ops   []Operation `yaml:"ops"`
	Merge *Merge      `yaml:"merge"`
}

// Merge joins two upstream nodes
type Merge struct {
	Left  string    `yaml:"left"`
	Right string    `yaml:"right"`
	How   string    `yaml:"how"` // inner (default), left, right, outer or cross
	On    []JoinKey `yaml:"on"`
	Expr  string    `yaml:"expr"` // a predicate over left.column and right.column
}

// JoinKey pairs a left column with a right column. A plain string names a column
// present on both sides.
type JoinKey struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// UnmarshalYAML accepts either a column name or a {left, right} mapping
func (k *JoinKey) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		k.Left, k.Right = node.Value, node.Value
		return nil
	}
	type plain JoinKey
	return node.Decode((*plain)(k))
}

// Operation is a single transformation. Exactly one field must be set.
type Operation struct {
	Filter     map[string]interface{} `yaml:"filter"`
	FilterExpr string                 `yaml:"filter_expr"`
	Select     []string               `yaml:"select"`
	Rename     map[string]string      `yaml:"rename"`
	Remove     []string               `yaml:"remove"`
	Cast       map[string]string      `yaml:"cast"`
	CastOrNull map[string]string      `yaml:"cast_or_null"`
	Limit      *int64                 `yaml:"limit"`
	Sort       []SortKey              `yaml:"sort"`
	GroupBy    *GroupBy               `yaml:"group_by"`
	Distinct   []string               `yaml:"distinct"`
	Stringify  bool                   `yaml:"stringify"`
}

// SortKey orders by a column. A plain string sorts ascending.
type SortKey struct {
	Column     string `yaml:"column"`
	Descending bool   `yaml:"descending"`
}

// UnmarshalYAML accepts either a column name or a {column, descending} mapping
func (k *SortKey) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		k.Column = node.Value
		return nil
	}
	type plain SortKey
	return node.Decode((*plain)(k))
}

// GroupBy groups by key columns and aggregates every group
type GroupBy struct {
	Keys         []string      `yaml:"keys"`
	Aggregations []Aggregation `yaml:"aggregations"`
}

// Aggregation is an (aggregation function, input column, output name) triple
type Aggregation struct {
	Func   string `yaml:"func"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Sink describes where the output of a node is written. A sink with a driver writes to a
// database table, and any other sink writes a file (or s3:// object) at path.
type Sink struct {
	ID     string `yaml:"id"`
	Input  string `yaml:"input"`
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // detected from the extension of path if omitted

	Delimiter   string `yaml:"delimiter"`
	NoHeader    bool   `yaml:"no_header"`
	NilValue    string `yaml:"nil_value"`
	Compression string `yaml:"compression"` // parquet only

	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
	Mode   string `yaml:"mode"` // append (default), replace or create
}

// Load reads and validates a pipeline definition from a file
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a pipeline definition. Unknown fields are rejected.
func Parse(data []byte) (*Pipeline, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	p := &Pipeline{}
	if err := decoder.Decode(p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
