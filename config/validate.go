package config

import (
	"fmt"
	"strings"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/accumulators"
	"github.com/flowsome/flowsome/datasource/file"
	"github.com/flowsome/flowsome/executor"
	"github.com/flowsome/flowsome/internal/objectstore"
	"github.com/flowsome/flowsome/internal/sqlutil"
	"github.com/flowsome/flowsome/operations/transform"
	"github.com/flowsome/flowsome/schema"
	"github.com/hashicorp/go-multierror"
)

// Validate checks the structure of a pipeline definition, returning every problem found
func (p *Pipeline) Validate() error {
	var result *multierror.Error
	if _, err := executor.ParseStrategy(p.Strategy); err != nil {
		result = multierror.Append(result, err)
	}
	if p.PartitionSize < 0 {
		result = multierror.Append(result, fmt.Errorf("partition_size must not be negative"))
	}
	if len(p.Sources) == 0 {
		result = multierror.Append(result, fmt.Errorf("pipeline requires at least one source"))
	}
	if len(p.Sinks) == 0 {
		result = multierror.Append(result, fmt.Errorf("pipeline requires at least one sink"))
	}

	ids := make(map[string]bool)
	declare := func(kind string, id string) {
		if id == "" {
			result = multierror.Append(result, fmt.Errorf("every %s requires an id", kind))
		} else if ids[id] {
			result = multierror.Append(result, fmt.Errorf("id %q is used more than once", id))
		}
		ids[id] = true
	}
	for _, s := range p.Sources {
		declare("source", s.ID)
	}
	for _, s := range p.Steps {
		declare("step", s.ID)
	}
	for _, s := range p.Sinks {
		declare("sink", s.ID)
	}
	reference := func(owner string, field string, id string) {
		if id == "" {
			result = multierror.Append(result, fmt.Errorf("%s: %s is required", owner, field))
		} else if !ids[id] {
			result = multierror.Append(result, fmt.Errorf("%s: %s refers to unknown id %q", owner, field, id))
		}
	}

	for _, s := range p.Sources {
		for _, err := range s.validate() {
			result = multierror.Append(result, fmt.Errorf("source %s: %w", s.ID, err))
		}
	}
	for _, s := range p.Steps {
		owner := "step " + s.ID
		if s.Merge != nil {
			if s.Input != "" || len(s.Ops) > 0 {
				result = multierror.Append(result, fmt.Errorf("%s: merge steps cannot have an input or ops", owner))
			}
			reference(owner, "merge.left", s.Merge.Left)
			reference(owner, "merge.right", s.Merge.Right)
			if _, err := s.Merge.spec(); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", owner, err))
			}
			continue
		}
		reference(owner, "input", s.Input)
		for i, op := range s.Ops {
			if _, err := op.build(); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: op %d: %w", owner, i+1, err))
			}
		}
	}
	for _, s := range p.Sinks {
		reference("sink "+s.ID, "input", s.Input)
		for _, err := range s.validate() {
			result = multierror.Append(result, fmt.Errorf("sink %s: %w", s.ID, err))
		}
	}
	return result.ErrorOrNil()
}

func (s *Source) validate() []error {
	errs := []error{}
	if len(s.Schema) == 0 {
		errs = append(errs, fmt.Errorf("schema is required"))
	}
	if _, err := s.schema(); err != nil {
		errs = append(errs, err)
	}
	switch {
	case s.Driver != "":
		if _, err := sqlutil.ForDriver(s.Driver); err != nil {
			errs = append(errs, err)
		}
		if s.Query == "" && s.Table == "" {
			errs = append(errs, fmt.Errorf("database sources require a query or a table"))
		}
	case s.Rows != nil:
		if s.Path != "" {
			errs = append(errs, fmt.Errorf("sources cannot have both rows and a path"))
		}
	case s.Path == "":
		errs = append(errs, fmt.Errorf("path is required"))
	default:
		format, err := s.format()
		if err != nil {
			errs = append(errs, err)
		} else if format == file.Parquet && isS3(s.Path) {
			errs = append(errs, fmt.Errorf("parquet sources must be local files"))
		} else if !format.IsDelimited() && (s.Delimiter != "" || s.HeaderLines > 0 || s.LazyQuotes) {
			errs = append(errs, fmt.Errorf("delimiter, header_lines and lazy_quotes only apply to delimited formats, not %s", format))
		}
		if isS3(s.Path) {
			if _, _, err := objectstore.ParseS3Path(s.Path); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

func (s *Sink) validate() []error {
	errs := []error{}
	if s.Driver != "" {
		if _, err := sqlutil.ForDriver(s.Driver); err != nil {
			errs = append(errs, err)
		}
		if s.Table == "" {
			errs = append(errs, fmt.Errorf("database sinks require a table"))
		}
		if _, err := sqlutil.ParseWriteMode(s.Mode); err != nil {
			errs = append(errs, err)
		}
		return errs
	}
	if s.Path == "" {
		return append(errs, fmt.Errorf("path is required"))
	}
	format, err := s.format()
	if err != nil {
		errs = append(errs, err)
	} else if format == file.Parquet && isS3(s.Path) {
		errs = append(errs, fmt.Errorf("parquet sinks must be local files"))
	} else if !format.IsDelimited() && (s.Delimiter != "" || s.NoHeader) {
		errs = append(errs, fmt.Errorf("delimiter and no_header only apply to delimited formats, not %s", format))
	}
	if isS3(s.Path) {
		if _, _, err := objectstore.ParseS3Path(s.Path); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// schema builds the Schema of a source
func (s *Source) schema() (flowsome.Schema, error) {
	names := make([]string, len(s.Schema))
	types := make([]flowsome.ColumnType, len(s.Schema))
	for i, col := range s.Schema {
		colType, err := flowsome.ParseColumnType(col.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		names[i] = col.Name
		types[i] = colType
	}
	return schema.CreateSchemaFromColumns(names, types)
}

func (s *Source) format() (file.Format, error) {
	if s.Format != "" {
		return file.ParseFormat(s.Format)
	}
	return file.DetectFormat(s.Path)
}

func (s *Sink) format() (file.Format, error) {
	if s.Format != "" {
		return file.ParseFormat(s.Format)
	}
	return file.DetectFormat(s.Path)
}

func (m *Merge) spec() (*transform.JoinSpec, error) {
	kind, err := transform.ParseJoinKind(m.How)
	if err != nil {
		return nil, err
	}
	spec := &transform.JoinSpec{Kind: kind, Expr: m.Expr}
	for _, key := range m.On {
		if key.Left == "" || key.Right == "" {
			return nil, fmt.Errorf("join keys require a left and a right column")
		}
		spec.On = append(spec.On, transform.On(key.Left, key.Right))
	}
	if kind != transform.CrossJoin && len(spec.On) == 0 && spec.Expr == "" {
		return nil, fmt.Errorf("%s merges require either on or expr", kind)
	}
	if len(spec.On) > 0 && spec.Expr != "" {
		return nil, fmt.Errorf("merges cannot have both on and expr")
	}
	return spec, nil
}

func isS3(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// parseRune reads a single-character option, such as a delimiter
func parseRune(name string, value string) (rune, error) {
	switch value {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	runes := []rune(value)
	if len(runes) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", name, value)
	}
	return runes[0], nil
}

func aggregation(a Aggregation) (accumulators.Aggregation, error) {
	fn, err := accumulators.ParseAggregateFunc(a.Func)
	if err != nil {
		return accumulators.Aggregation{}, err
	}
	output := a.Output
	if output == "" {
		if a.Input == "" {
			output = string(fn)
		} else {
			output = a.Input + "_" + string(fn)
		}
	}
	return accumulators.Agg(fn, a.Input, output), nil
}
