package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/executor"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Options configure the execution of a Pipeline
type Options struct {
	Executor          *executor.Options // how each DataFrame is executed
	WriterConcurrency int               // the maximum number of Sinks written concurrently. Defaults to 1.
}

// Result is the output of running a Pipeline
type Result struct {
	Tables map[string]flowsome.Table // the Table written by each write task, by task ID
}

// Pipeline is a directed acyclic graph of Tasks
type Pipeline struct {
	tasks    map[string]Task
	order    []string // insertion order, for deterministic scheduling
	parents  map[string][]string
	children map[string][]string
	opts     *Options
}

// New creates an empty Pipeline
func New(opts *Options) *Pipeline {
	if opts == nil {
		opts = &Options{}
	}
	if opts.WriterConcurrency <= 0 {
		opts.WriterConcurrency = 1
	}
	return &Pipeline{
		tasks:    make(map[string]Task),
		parents:  make(map[string][]string),
		children: make(map[string][]string),
		opts:     opts,
	}
}

// AddTask adds a Task to this Pipeline. Task IDs must be unique.
func (p *Pipeline) AddTask(task Task) error {
	if task == nil || task.ID() == "" {
		return &errors.InvalidPipelineError{Reason: "tasks must have a non-empty ID"}
	}
	if existing, ok := p.tasks[task.ID()]; ok {
		if existing == task {
			return nil
		}
		return &errors.InvalidPipelineError{Task: task.ID(), Reason: "task ID is used more than once"}
	}
	p.tasks[task.ID()] = task
	p.order = append(p.order, task.ID())
	return nil
}

// AddEdge makes from a parent of to, adding either Task to this Pipeline if necessary
func (p *Pipeline) AddEdge(from Task, to Task) error {
	if err := p.AddTask(from); err != nil {
		return err
	}
	if err := p.AddTask(to); err != nil {
		return err
	}
	for _, c := range p.children[from.ID()] {
		if c == to.ID() {
			return &errors.InvalidPipelineError{Task: to.ID(), Reason: fmt.Sprintf("already connected to %s", from.ID())}
		}
	}
	p.children[from.ID()] = append(p.children[from.ID()], to.ID())
	p.parents[to.ID()] = append(p.parents[to.ID()], from.ID())
	return nil
}

// Tasks returns the Tasks of this Pipeline, in the order they were added
func (p *Pipeline) Tasks() []Task {
	tasks := make([]Task, len(p.order))
	for i, id := range p.order {
		tasks[i] = p.tasks[id]
	}
	return tasks
}

// Parents returns the IDs of the parents of a Task, in the order they were connected
func (p *Pipeline) Parents(id string) []string {
	return append([]string(nil), p.parents[id]...)
}

// Validate checks that this Pipeline is acyclic, and that every Task has the right
// number of parents, returning the Tasks in topological order
func (p *Pipeline) Validate() ([]Task, error) {
	if len(p.tasks) == 0 {
		return nil, &errors.InvalidPipelineError{Reason: "pipeline contains no tasks"}
	}
	for _, id := range p.order {
		task := p.tasks[id]
		if n := len(p.parents[id]); n != task.Kind().numParents() {
			return nil, &errors.InvalidPipelineError{
				Task:   id,
				Reason: fmt.Sprintf("%s tasks require %d parent(s), found %d", task.Kind(), task.Kind().numParents(), n),
			}
		}
		if task.Kind() == WriteKind && len(p.children[id]) > 0 {
			return nil, &errors.InvalidPipelineError{Task: id, Reason: "write tasks cannot have children"}
		}
	}
	return p.topologicalOrder()
}

// topologicalOrder sorts the Tasks with Kahn's algorithm, preferring insertion order
func (p *Pipeline) topologicalOrder() ([]Task, error) {
	inDegree := make(map[string]int, len(p.tasks))
	for _, id := range p.order {
		inDegree[id] = len(p.parents[id])
	}
	sorted := make([]Task, 0, len(p.tasks))
	for len(sorted) < len(p.tasks) {
		progressed := false
		for _, id := range p.order {
			if inDegree[id] != 0 {
				continue
			}
			inDegree[id] = -1
			sorted = append(sorted, p.tasks[id])
			for _, c := range p.children[id] {
				inDegree[c]--
			}
			progressed = true
		}
		if !progressed {
			remaining := []string{}
			for id, d := range inDegree {
				if d > 0 {
					remaining = append(remaining, id)
				}
			}
			sort.Strings(remaining)
			return nil, &errors.PipelineCycleError{Tasks: remaining}
		}
	}
	return sorted, nil
}

// Frames builds the DataFrame produced by every non-write Task
func (p *Pipeline) Frames() (map[string]flowsome.DataFrame, error) {
	sorted, err := p.Validate()
	if err != nil {
		return nil, err
	}
	frames := make(map[string]flowsome.DataFrame, len(sorted))
	for _, task := range sorted {
		parents := p.parents[task.ID()]
		var frame flowsome.DataFrame
		var err error
		switch t := task.(type) {
		case *ReadTask:
			if t.frame == nil {
				err = fmt.Errorf("no DataFrame to read")
			}
			frame = t.frame
		case *TransformTask:
			frame, err = t.apply(frames[parents[0]])
		case *MergeTask:
			frame, err = t.apply(frames[parents[0]], frames[parents[1]])
		case *WriteTask:
			continue
		default:
			err = fmt.Errorf("unknown task type %T", task)
		}
		if err != nil {
			return nil, &errors.TaskExecutionError{Task: task.ID(), Err: err}
		}
		frames[task.ID()] = frame
	}
	return frames, nil
}

// Frame returns the DataFrame produced by a Task. For a write task, this is the
// DataFrame it writes.
func (p *Pipeline) Frame(id string) (flowsome.DataFrame, error) {
	task, ok := p.tasks[id]
	if !ok {
		return nil, &errors.InvalidPipelineError{Task: id, Reason: "no such task"}
	}
	frames, err := p.Frames()
	if err != nil {
		return nil, err
	}
	if task.Kind() == WriteKind {
		return frames[p.parents[id][0]], nil
	}
	return frames[id], nil
}

// Explain describes the Stages in which each written DataFrame would be executed, by
// write task ID
func (p *Pipeline) Explain() (map[string]string, error) {
	frames, err := p.Frames()
	if err != nil {
		return nil, err
	}
	plans := make(map[string]string)
	for _, id := range p.order {
		if p.tasks[id].Kind() != WriteKind {
			continue
		}
		plan, err := executor.Explain(frames[p.parents[id][0]], p.opts.Executor)
		if err != nil {
			return nil, &errors.TaskExecutionError{Task: id, Err: err}
		}
		plans[id] = plan
	}
	return plans, nil
}

// Run executes the Pipeline. Each DataFrame with writers is executed once, in
// topological order, and its Table is handed to every writer.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	sorted, err := p.Validate()
	if err != nil {
		return nil, err
	}
	frames, err := p.Frames()
	if err != nil {
		return nil, err
	}
	result := &Result{Tables: make(map[string]flowsome.Table)}
	for _, task := range sorted {
		writers := p.writers(task.ID())
		if len(writers) == 0 {
			continue
		}
		log.Info().Str("task", task.ID()).Int("writers", len(writers)).Msg("executing")
		res, err := executor.Run(ctx, frames[task.ID()], p.opts.Executor)
		if err != nil {
			return nil, &errors.TaskExecutionError{Task: task.ID(), Err: err}
		}
		if err := p.write(ctx, writers, res.Table); err != nil {
			return nil, err
		}
		for _, w := range writers {
			result.Tables[w.ID()] = res.Table
		}
	}
	return result, nil
}

func (p *Pipeline) writers(id string) []*WriteTask {
	writers := []*WriteTask{}
	for _, c := range p.children[id] {
		if w, ok := p.tasks[c].(*WriteTask); ok {
			writers = append(writers, w)
		}
	}
	return writers
}

func (p *Pipeline) write(ctx context.Context, writers []*WriteTask, table flowsome.Table) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.WriterConcurrency)
	for _, w := range writers {
		w := w
		g.Go(func() error {
			log.Debug().Str("task", w.ID()).Str("sink", w.sink.ToString()).Msg("writing")
			if err := w.sink.Write(gctx, table); err != nil {
				return &errors.TaskExecutionError{Task: w.ID(), Err: err}
			}
			log.Info().Str("task", w.ID()).Int("rows", table.NumRows()).Msg("written")
			return nil
		})
	}
	return g.Wait()
}
