package pipeline

import (
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/operations/transform"
)

// TaskKind identifies the role of a Task within a Pipeline
type TaskKind string

const (
	// ReadKind tasks produce a DataFrame from a DataSource
	ReadKind TaskKind = "read"
	// TransformKind tasks apply operations to the DataFrame of their parent
	TransformKind TaskKind = "transform"
	// MergeKind tasks join the DataFrames of their two parents
	MergeKind TaskKind = "merge"
	// WriteKind tasks execute the DataFrame of their parent, writing the result to a Sink
	WriteKind TaskKind = "write"
)

// Task is a node within a Pipeline
type Task interface {
	ID() string
	Kind() TaskKind
}

// numParents returns the number of parents a Task of kind k must have
func (k TaskKind) numParents() int {
	switch k {
	case ReadKind:
		return 0
	case MergeKind:
		return 2
	}
	return 1
}

// ReadTask produces a DataFrame
type ReadTask struct {
	id    string
	frame flowsome.DataFrame
}

// NewReadTask creates a ReadTask for a DataFrame, typically produced by a DataSource
func NewReadTask(id string, frame flowsome.DataFrame) *ReadTask {
	return &ReadTask{id: id, frame: frame}
}

// ID returns the unique name of this Task
func (t *ReadTask) ID() string { return t.id }

// Kind returns ReadKind
func (t *ReadTask) Kind() TaskKind { return ReadKind }

// TransformTask applies a sequence of operations to the DataFrame of its parent
type TransformTask struct {
	id  string
	ops []*flowsome.DataFrameOperation
}

// NewTransformTask creates a TransformTask
func NewTransformTask(id string, ops ...*flowsome.DataFrameOperation) *TransformTask {
	return &TransformTask{id: id, ops: ops}
}

// ID returns the unique name of this Task
func (t *TransformTask) ID() string { return t.id }

// Kind returns TransformKind
func (t *TransformTask) Kind() TaskKind { return TransformKind }

func (t *TransformTask) apply(parent flowsome.DataFrame) (flowsome.DataFrame, error) {
	return parent.To(t.ops...)
}

// MergeTask joins the DataFrames of its two parents. The parent connected first is the
// left-hand side.
type MergeTask struct {
	id   string
	spec transform.JoinSpec
}

// NewMergeTask creates a MergeTask. The Right DataFrame of spec is ignored, and replaced
// by the DataFrame of the second parent.
func NewMergeTask(id string, spec transform.JoinSpec) *MergeTask {
	return &MergeTask{id: id, spec: spec}
}

// ID returns the unique name of this Task
func (t *MergeTask) ID() string { return t.id }

// Kind returns MergeKind
func (t *MergeTask) Kind() TaskKind { return MergeKind }

func (t *MergeTask) apply(left flowsome.DataFrame, right flowsome.DataFrame) (flowsome.DataFrame, error) {
	spec := t.spec
	spec.Right = right
	return left.To(transform.Join(&spec))
}

// WriteTask executes the DataFrame of its parent and writes the result to a Sink
type WriteTask struct {
	id   string
	sink flowsome.Sink
}

// NewWriteTask creates a WriteTask
func NewWriteTask(id string, sink flowsome.Sink) *WriteTask {
	return &WriteTask{id: id, sink: sink}
}

// ID returns the unique name of this Task
func (t *WriteTask) ID() string { return t.id }

// Kind returns WriteKind
func (t *WriteTask) Kind() TaskKind { return WriteKind }

// Sink returns the destination of this WriteTask
func (t *WriteTask) Sink() flowsome.Sink { return t.sink }
