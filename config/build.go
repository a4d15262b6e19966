package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource/database"
	"github.com/flowsome/flowsome/datasource/file"
	"github.com/flowsome/flowsome/datasource/memory"
	objectsource "github.com/flowsome/flowsome/datasource/objectstore"
	"github.com/flowsome/flowsome/datasource/parquet"
	"github.com/flowsome/flowsome/datasource/parser/dsv"
	"github.com/flowsome/flowsome/datasource/parser/jsonl"
	"github.com/flowsome/flowsome/executor"
	"github.com/flowsome/flowsome/internal/objectstore"
	"github.com/flowsome/flowsome/internal/sqlutil"
	"github.com/flowsome/flowsome/pipeline"
	dbsink "github.com/flowsome/flowsome/sink/database"
	dsvsink "github.com/flowsome/flowsome/sink/dsv"
	filesink "github.com/flowsome/flowsome/sink/file"
	jsonlsink "github.com/flowsome/flowsome/sink/jsonl"
	objectsink "github.com/flowsome/flowsome/sink/objectstore"
	parquetsink "github.com/flowsome/flowsome/sink/parquet"
)

// ObjectStoreClient is the subset of the S3 client used by object store sources and sinks
type ObjectStoreClient interface {
	objectsource.API
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// BuildOptions adjust how a pipeline definition is built
type BuildOptions struct {
	Executor    *executor.Options // overrides the executor settings of the definition, if non-nil
	ObjectStore ObjectStoreClient // used for s3:// paths instead of a client built from the s3 section
}

// ExecutorOptions returns the executor settings of the definition
func (p *Pipeline) ExecutorOptions() (*executor.Options, error) {
	strategy, err := executor.ParseStrategy(p.Strategy)
	if err != nil {
		return nil, err
	}
	return &executor.Options{
		Strategy:        strategy,
		PartitionSize:   p.PartitionSize,
		IgnoreRowErrors: p.IgnoreRowErrors,
	}, nil
}

type builder struct {
	def         *Pipeline
	opts        *executor.Options
	objectStore ObjectStoreClient
}

// Build assembles a runnable Pipeline from this definition
func (p *Pipeline) Build(opts *BuildOptions) (*pipeline.Pipeline, error) {
	if opts == nil {
		opts = &BuildOptions{}
	}
	execOpts := opts.Executor
	if execOpts == nil {
		var err error
		if execOpts, err = p.ExecutorOptions(); err != nil {
			return nil, err
		}
	}
	b := &builder{def: p, opts: execOpts, objectStore: opts.ObjectStore}
	pipe := pipeline.New(&pipeline.Options{Executor: execOpts, WriterConcurrency: p.WriterConcurrency})

	tasks := make(map[string]pipeline.Task)
	for i := range p.Sources {
		src := &p.Sources[i]
		frame, err := b.source(src)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.ID, err)
		}
		tasks[src.ID] = pipeline.NewReadTask(src.ID, frame)
	}
	for i := range p.Steps {
		step := &p.Steps[i]
		if step.Merge != nil {
			spec, err := step.Merge.spec()
			if err != nil {
				return nil, fmt.Errorf("step %s: %w", step.ID, err)
			}
			tasks[step.ID] = pipeline.NewMergeTask(step.ID, *spec)
			continue
		}
		ops := []*flowsome.DataFrameOperation{}
		for j := range step.Ops {
			built, err := step.Ops[j].build()
			if err != nil {
				return nil, fmt.Errorf("step %s: op %d: %w", step.ID, j+1, err)
			}
			ops = append(ops, built...)
		}
		tasks[step.ID] = pipeline.NewTransformTask(step.ID, ops...)
	}
	for i := range p.Sinks {
		s := &p.Sinks[i]
		sink, err := b.sink(s)
		if err != nil {
			return nil, fmt.Errorf("sink %s: %w", s.ID, err)
		}
		tasks[s.ID] = pipeline.NewWriteTask(s.ID, sink)
	}

	// tasks are added in definition order, so that scheduling follows the file
	for _, src := range p.Sources {
		if err := pipe.AddTask(tasks[src.ID]); err != nil {
			return nil, err
		}
	}
	for _, step := range p.Steps {
		var err error
		if step.Merge != nil {
			if err = pipe.AddEdge(tasks[step.Merge.Left], tasks[step.ID]); err == nil {
				err = pipe.AddEdge(tasks[step.Merge.Right], tasks[step.ID])
			}
		} else {
			err = pipe.AddEdge(tasks[step.Input], tasks[step.ID])
		}
		if err != nil {
			return nil, err
		}
	}
	for _, s := range p.Sinks {
		if err := pipe.AddEdge(tasks[s.Input], tasks[s.ID]); err != nil {
			return nil, err
		}
	}
	if _, err := pipe.Validate(); err != nil {
		return nil, err
	}
	return pipe, nil
}

func (b *builder) client() ObjectStoreClient {
	if b.objectStore == nil {
		conf := b.def.S3
		if conf == nil {
			conf = &objectstore.Conf{}
		}
		b.objectStore = objectstore.NewClient(conf)
	}
	return b.objectStore
}

func (b *builder) source(src *Source) (flowsome.DataFrame, error) {
	schema, err := src.schema()
	if err != nil {
		return nil, err
	}
	if src.Driver != "" {
		return database.CreateDataFrame(&database.Conf{
			Driver:        src.Driver,
			DSN:           src.DSN,
			Query:         src.Query,
			Table:         src.Table,
			Args:          src.Args,
			PartitionSize: b.opts.PartitionSize,
		}, schema)
	}
	if src.Rows != nil {
		return memory.CreateValuesDataFrame(schema, src.Rows)
	}
	format, err := src.format()
	if err != nil {
		return nil, err
	}
	if format == file.Parquet {
		if isS3(src.Path) {
			return nil, fmt.Errorf("parquet sources must be local files")
		}
		return parquet.CreateDataFrame(src.Path, b.opts.PartitionSize, schema)
	}
	parser, err := src.parser(format, b.opts.PartitionSize)
	if err != nil {
		return nil, err
	}
	if isS3(src.Path) {
		return objectsource.CreateDataFrame(b.client(), src.Path, parser, schema)
	}
	return file.CreateDataFrame(src.Path, parser, schema), nil
}

func (src *Source) parser(format file.Format, partitionSize int) (flowsome.DataSourceParser, error) {
	comment, err := parseRune("comment", src.Comment)
	if err != nil {
		return nil, err
	}
	if format == file.JSONL {
		return jsonl.CreateParser(&jsonl.ParserConf{
			PartitionSize: partitionSize,
			HeaderLines:   src.HeaderLines,
			Comment:       comment,
		}), nil
	}
	delimiter, err := parseRune("delimiter", src.Delimiter)
	if err != nil {
		return nil, err
	}
	if delimiter == 0 {
		delimiter = format.Delimiter()
	}
	return dsv.CreateParser(&dsv.ParserConf{
		PartitionSize: partitionSize,
		HeaderLines:   src.HeaderLines,
		Delimiter:     delimiter,
		Comment:       comment,
		NilValue:      src.NilValue,
		LazyQuotes:    src.LazyQuotes,
	}), nil
}

func (b *builder) sink(s *Sink) (flowsome.Sink, error) {
	if s.Driver != "" {
		mode, err := sqlutil.ParseWriteMode(s.Mode)
		if err != nil {
			return nil, err
		}
		return dbsink.CreateSink(&dbsink.Conf{Driver: s.Driver, DSN: s.DSN, Table: s.Table, Mode: mode})
	}
	format, err := s.format()
	if err != nil {
		return nil, err
	}
	if format == file.Parquet {
		if isS3(s.Path) {
			return nil, fmt.Errorf("parquet sinks must be local files")
		}
		return parquetsink.CreateSink(s.Path, s.Compression), nil
	}
	var encoder flowsome.TableEncoder
	if format == file.JSONL {
		encoder = jsonlsink.CreateEncoder()
	} else {
		delimiter, err := parseRune("delimiter", s.Delimiter)
		if err != nil {
			return nil, err
		}
		if delimiter == 0 {
			delimiter = format.Delimiter()
		}
		encoder = dsvsink.CreateEncoder(&dsvsink.EncoderConf{Delimiter: delimiter, NoHeader: s.NoHeader, NilValue: s.NilValue})
	}
	if isS3(s.Path) {
		return objectsink.CreateSink(b.client(), s.Path, encoder)
	}
	return filesink.CreateSink(s.Path, encoder), nil
}
