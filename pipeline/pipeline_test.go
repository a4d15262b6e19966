package pipeline

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/accumulators"
	"github.com/flowsome/flowsome/datasource/memory"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/executor"
	"github.com/flowsome/flowsome/operations/transform"
	"github.com/flowsome/flowsome/schema"
	ftesting "github.com/flowsome/flowsome/testing"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func createCountries(t *testing.T) flowsome.DataFrame {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"id", "country", "population"},
		[]flowsome.ColumnType{&flowsome.Int64ColumnType{}, &flowsome.StringColumnType{}, &flowsome.Int64ColumnType{}},
	)
	require.Nil(t, err)
	frame, err := memory.CreateValuesDataFrame(s, [][]interface{}{
		{1, "Cyprus", 1200},
		{2, "Greece", 10400},
		{3, "Cyprus", 300},
		{4, "Malta", 500},
	})
	require.Nil(t, err)
	return frame
}

func createCapitals(t *testing.T) flowsome.DataFrame {
	s, err := schema.CreateSchemaFromColumns(
		[]string{"country", "capital"},
		[]flowsome.ColumnType{&flowsome.StringColumnType{}, &flowsome.StringColumnType{}},
	)
	require.Nil(t, err)
	frame, err := memory.CreateValuesDataFrame(s, [][]interface{}{
		{"Cyprus", "Nicosia"},
		{"Greece", "Athens"},
	})
	require.Nil(t, err)
	return frame
}

func TestSinglePath(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := New(nil)
	reader := NewReadTask("r1", createCountries(t))
	filter := NewTransformTask("t1", transform.FilterWhere(map[string]interface{}{"country": map[string]interface{}{"eq": "Cyprus"}}))
	limit := NewTransformTask("t2", transform.Limit(1))
	sink := &ftesting.MemorySink{}
	writer := NewWriteTask("w1", sink)
	require.Nil(t, p.AddEdge(reader, filter))
	require.Nil(t, p.AddEdge(filter, limit))
	require.Nil(t, p.AddEdge(limit, writer))

	res, err := p.Run(context.Background())
	require.Nil(t, err)
	require.Len(t, sink.Tables(), 1)
	require.Equal(t, [][]interface{}{{int64(1), "Cyprus", int64(1200)}}, ftesting.Rows(res.Tables["w1"]))
}

func TestMergeAndFanOut(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := New(&Options{Executor: &executor.Options{Strategy: executor.Eager}, WriterConcurrency: 2})
	countries := NewReadTask("countries", createCountries(t))
	capitals := NewReadTask("capitals", createCapitals(t))
	merge := NewMergeTask("merge", transform.JoinSpec{Kind: transform.LeftJoin, On: []transform.JoinOn{transform.On("country", "country")}})
	group := NewTransformTask("group", transform.GroupBy(
		[]flowsome.ColumnRef{flowsome.Col("country"), flowsome.Col("capital")},
		accumulators.Agg(accumulators.SumFunc, "population", "population"),
	))
	first, second := &ftesting.MemorySink{}, &ftesting.MemorySink{}
	require.Nil(t, p.AddEdge(countries, merge))
	require.Nil(t, p.AddEdge(capitals, merge))
	require.Nil(t, p.AddEdge(merge, group))
	require.Nil(t, p.AddEdge(group, NewWriteTask("w1", first)))
	require.Nil(t, p.AddEdge(group, NewWriteTask("w2", second)))

	res, err := p.Run(context.Background())
	require.Nil(t, err)
	expected := [][]interface{}{
		{"Cyprus", "Nicosia", int64(1500)},
		{"Greece", "Athens", int64(10400)},
		{"Malta", nil, int64(500)},
	}
	require.Equal(t, expected, ftesting.Rows(res.Tables["w1"]))
	require.Len(t, first.Tables(), 1)
	require.Len(t, second.Tables(), 1)
	// both writers receive the result of a single execution
	require.Equal(t, first.Tables()[0].ID(), second.Tables()[0].ID())

	plans, err := p.Explain()
	require.Nil(t, err)
	require.Contains(t, plans, "w1")
	require.Contains(t, plans, "w2")
}

func TestCycle(t *testing.T) {
	p := New(nil)
	reader := NewReadTask("r", createCountries(t))
	merge := NewMergeTask("m", transform.JoinSpec{Kind: transform.CrossJoin})
	loop := NewTransformTask("t")
	require.Nil(t, p.AddEdge(reader, merge))
	require.Nil(t, p.AddEdge(loop, merge))
	require.Nil(t, p.AddEdge(merge, loop))
	_, err := p.Run(context.Background())
	var cerr *errors.PipelineCycleError
	require.True(t, goerrors.As(err, &cerr))
	require.Equal(t, []string{"m", "t"}, cerr.Tasks)
}

func TestInvalidPipelines(t *testing.T) {
	var ierr *errors.InvalidPipelineError

	_, err := New(nil).Validate()
	require.True(t, goerrors.As(err, &ierr))

	// a transform without a parent
	p := New(nil)
	require.Nil(t, p.AddTask(NewTransformTask("t")))
	_, err = p.Validate()
	require.True(t, goerrors.As(err, &ierr))
	require.Equal(t, "t", ierr.Task)

	// a merge with a single parent
	p = New(nil)
	require.Nil(t, p.AddEdge(NewReadTask("r", createCountries(t)), NewMergeTask("m", transform.JoinSpec{Kind: transform.CrossJoin})))
	_, err = p.Validate()
	require.True(t, goerrors.As(err, &ierr))
	require.Equal(t, "m", ierr.Task)

	// a writer with children
	p = New(nil)
	reader := NewReadTask("r", createCountries(t))
	writer := NewWriteTask("w", &ftesting.MemorySink{})
	require.Nil(t, p.AddEdge(reader, writer))
	require.Nil(t, p.AddEdge(writer, NewTransformTask("t")))
	_, err = p.Validate()
	require.True(t, goerrors.As(err, &ierr))

	// duplicate IDs and edges
	p = New(nil)
	require.Nil(t, p.AddEdge(reader, writer))
	require.NotNil(t, p.AddEdge(reader, writer))
	require.NotNil(t, p.AddTask(NewReadTask("r", createCountries(t))))
}

func TestTaskErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	var terr *errors.TaskExecutionError

	// invalid operations are reported when the pipeline is built
	p := New(nil)
	require.Nil(t, p.AddEdge(NewReadTask("r", createCountries(t)), NewTransformTask("bad", transform.Select(flowsome.Col("missing")))))
	_, err := p.Run(context.Background())
	require.True(t, goerrors.As(err, &terr))
	require.Equal(t, "bad", terr.Task)

	// row errors are reported against the executed task
	p = New(nil)
	boom := NewTransformTask("boom", transform.Map(func(row flowsome.Row) error {
		return fmt.Errorf("boom")
	}))
	require.Nil(t, p.AddEdge(NewReadTask("r", createCountries(t)), boom))
	require.Nil(t, p.AddEdge(boom, NewWriteTask("w", &ftesting.MemorySink{})))
	_, err = p.Run(context.Background())
	require.True(t, goerrors.As(err, &terr))
	require.Equal(t, "boom", terr.Task)

	// sink failures are reported against the write task
	p = New(nil)
	reader := NewReadTask("r", createCountries(t))
	require.Nil(t, p.AddEdge(reader, NewWriteTask("ok", &ftesting.MemorySink{})))
	require.Nil(t, p.AddEdge(reader, NewWriteTask("broken", &ftesting.MemorySink{Err: fmt.Errorf("disk full")})))
	_, err = p.Run(context.Background())
	require.True(t, goerrors.As(err, &terr))
	require.Equal(t, "broken", terr.Task)
}

func TestFrame(t *testing.T) {
	p := New(nil)
	reader := NewReadTask("r", createCountries(t))
	sel := NewTransformTask("sel", transform.Select(flowsome.Col("country")))
	require.Nil(t, p.AddEdge(reader, sel))
	require.Nil(t, p.AddEdge(sel, NewWriteTask("w", &ftesting.MemorySink{})))
	frame, err := p.Frame("w")
	require.Nil(t, err)
	require.Equal(t, []string{"country"}, frame.GetSchema().ColumnNames())
	_, err = p.Frame("nope")
	require.NotNil(t, err)
}
