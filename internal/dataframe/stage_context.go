package dataframe

import (
	"context"

	"github.com/flowsome/flowsome"
)

// stageContextImpl is a Context enhanced with the state of the Stage being executed
type stageContextImpl struct {
	context.Context
	stageID             int
	targetPartitionSize int
	ignoreRowErrors     bool
	materialize         func(ctx context.Context, frame flowsome.DataFrame) (flowsome.Table, error)
}

// createStageContext is a factory for StageContexts
func createStageContext(ctx context.Context, stageID int, pe *planExecutorImpl) flowsome.StageContext {
	return &stageContextImpl{
		Context:             ctx,
		stageID:             stageID,
		targetPartitionSize: pe.conf.PartitionSize,
		ignoreRowErrors:     pe.conf.IgnoreRowErrors,
		materialize:         pe.materialize,
	}
}

// StageID returns the ID of the Stage being executed
func (s *stageContextImpl) StageID() int {
	return s.stageID
}

// TargetPartitionSize returns the intended Partition maxSize for outgoing Partitions
func (s *stageContextImpl) TargetPartitionSize() int {
	return s.targetPartitionSize
}

// IgnoreRowErrors returns true iff failing Rows should be dropped rather than aborting execution
func (s *stageContextImpl) IgnoreRowErrors() bool {
	return s.ignoreRowErrors
}

// Materialize executes another DataFrame with the same options, returning its result
func (s *stageContextImpl) Materialize(frame flowsome.DataFrame) (flowsome.Table, error) {
	return s.materialize(s.Context, frame)
}
