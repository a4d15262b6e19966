package dataframe

import (
	"fmt"
	"strings"

	"github.com/flowsome/flowsome"
	iutil "github.com/flowsome/flowsome/internal/util"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
)

// Stage is a group of tasks which are applied to each Partition in turn.
// stages block the execution of further stages until they
// are complete.
type stageImpl struct {
	id             int
	incomingSchema flowsome.Schema
	outgoingSchema flowsome.Schema
	frames         []*dataFrameImpl
}

// createStage is a factory for Stages, safely assigning deterministic IDs
func createStage(id int, incomingSchema flowsome.Schema) *stageImpl {
	return &stageImpl{
		id:             id,
		incomingSchema: incomingSchema,
		frames:         []*dataFrameImpl{},
	}
}

// ID returns the ID for this Stage
func (s *stageImpl) ID() int {
	return s.id
}

// IncomingSchema is the Schema for data entering this Stage
func (s *stageImpl) IncomingSchema() flowsome.Schema {
	return s.incomingSchema
}

// OutgoingSchema is the Schema for data leaving this Stage
func (s *stageImpl) OutgoingSchema() flowsome.Schema {
	return s.outgoingSchema
}

// TaskTypes lists the types of the tasks in this Stage, in order
func (s *stageImpl) TaskTypes() []flowsome.TaskType {
	types := make([]flowsome.TaskType, len(s.frames))
	for i, f := range s.frames {
		types[i] = f.taskType
	}
	return types
}

// WorkerInitialize runs the initialization of every task in this Stage
func (s *stageImpl) WorkerInitialize(sctx flowsome.StageContext) error {
	for _, f := range s.frames {
		if err := f.task.RunInitialize(sctx); err != nil {
			return fmt.Errorf("Error initializing %s task of stage %d: %w", f.taskType, s.id, err)
		}
	}
	return nil
}

// WorkerExecute runs a stage against a Partition of data, returning
// the resulting Partitions (which may have been filtered, reshaped,
// or buffered by a FinalizingTask)
func (s *stageImpl) WorkerExecute(sctx flowsome.StageContext, part flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	var prev = []flowsome.OperablePartition{part}
	for _, frame := range s.frames {
		next := make([]flowsome.OperablePartition, 0, len(prev))
		for _, p := range prev {
			out, err := frame.task.RunWorker(sctx, p)
			if err = s.onRowErrors(sctx, frame, err); err != nil {
				return nil, err
			}
			next = append(next, out...)
		}
		prev = next
	}
	return prev, nil
}

// WorkerFinalize flushes the final task of this Stage, if it is a FinalizingTask
func (s *stageImpl) WorkerFinalize(sctx flowsome.StageContext) ([]flowsome.OperablePartition, error) {
	if len(s.frames) == 0 {
		return nil, nil
	}
	last := s.frames[len(s.frames)-1]
	fTask, ok := last.task.(flowsome.FinalizingTask)
	if !ok {
		return nil, nil
	}
	out, err := fTask.RunFinalize(sctx)
	if err = s.onRowErrors(sctx, last, err); err != nil {
		return nil, err
	}
	return out, nil
}

// onRowErrors decides whether an error produced by a task aborts the Stage. Row-level
// failures are reported as a *multierror.Error alongside the surviving Rows.
func (s *stageImpl) onRowErrors(sctx flowsome.StageContext, frame *dataFrameImpl, err error) error {
	if err == nil {
		return nil
	}
	merr, ok := err.(*multierror.Error)
	if !ok || !sctx.IgnoreRowErrors() {
		return err
	}
	log.Warn().
		Int("stage", s.id).
		Str("task", string(frame.taskType)).
		Int("rows", len(merr.Errors)).
		Str("errors", iutil.FormatMultiError(merr.Errors)).
		Msg("dropping rows")
	return nil
}

// IsExhausted returns true iff a task in this Stage requires no further input
func (s *stageImpl) IsExhausted() bool {
	for _, f := range s.frames {
		if tTask, ok := f.task.(flowsome.TerminatingTask); ok && tTask.IsExhausted() {
			return true
		}
	}
	return false
}

// EndsInFinalize returns true iff this Stage ends with a FinalizingTask
func (s *stageImpl) EndsInFinalize() bool {
	if len(s.frames) == 0 {
		return false
	}
	_, ok := s.frames[len(s.frames)-1].task.(flowsome.FinalizingTask)
	return ok
}

// EndsInCollect returns true iff this Stage represents a collect task
func (s *stageImpl) EndsInCollect() bool {
	return len(s.frames) > 0 && s.frames[len(s.frames)-1].taskType == flowsome.CollectTaskType
}

// GetCollectionLimit returns the maximum number of Rows to collect, or 0 for no limit
func (s *stageImpl) GetCollectionLimit() int64 {
	if !s.EndsInCollect() {
		return 0
	}
	cTask, ok := s.frames[len(s.frames)-1].task.(collectionTask)
	if !ok {
		return 0
	}
	return cTask.GetCollectionLimit()
}

// toString describes this Stage for plan explanations
func (s *stageImpl) toString() string {
	names := make([]string, len(s.frames))
	for i, f := range s.frames {
		names[i] = string(f.taskType)
	}
	return fmt.Sprintf("Stage %d: %s -> %s", s.id, strings.Join(names, " -> "), s.outgoingSchema.ToString())
}
