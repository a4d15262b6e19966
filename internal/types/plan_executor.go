package types

import (
	"context"

	"github.com/flowsome/flowsome"
)

// A PlanExecutor manages the execution of a DataFrame Plan
type PlanExecutor interface {
	ID() string                                      // ID returns the ID for this PlanExecutor
	GetConf() *PlanExecutorConfig                    // GetConf returns the configuration for this PlanExecutor
	HasNextStage() bool                              // HasNextStage forms an iterator for planExecutor Stages
	GetNextStage() Stage                             // NextStage forms an iterator for planExecutor Stages
	GetCurrentStage() Stage                          // GetCurrentStage returns the current stage without advancing the iterator, or nil if the iterator has never been advanced
	Run(ctx context.Context) (flowsome.Table, error) // Run executes every Stage in order, returning the collected result
	GetStatistics() flowsome.RuntimeStatistics       // GetStatistics returns statistics for the most recent Run
}
