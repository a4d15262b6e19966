package types

import "github.com/flowsome/flowsome"

// Stage is a group of tasks which are applied to each
// Partition in turn. Stages block the execution of
// further stages until they are complete.
type Stage interface {
	ID() int                                                                                                         // ID returns the ID for this stage
	IncomingSchema() flowsome.Schema                                                                                 // IncomingSchema is the Schema for data entering this Stage
	OutgoingSchema() flowsome.Schema                                                                                 // OutgoingSchema is the Schema for data leaving this Stage
	TaskTypes() []flowsome.TaskType                                                                                  // TaskTypes lists the types of the tasks in this Stage, in order
	WorkerInitialize(sctx flowsome.StageContext) error                                                               // WorkerInitialize runs the initialization of every task in this Stage
	WorkerExecute(sctx flowsome.StageContext, part flowsome.OperablePartition) ([]flowsome.OperablePartition, error) // WorkerExecute runs every task in this Stage against a Partition
	WorkerFinalize(sctx flowsome.StageContext) ([]flowsome.OperablePartition, error)                                 // WorkerFinalize flushes the final task of this Stage, if it is a FinalizingTask
	IsExhausted() bool                                                                                               // IsExhausted returns true iff this Stage requires no further input
	EndsInFinalize() bool                                                                                            // EndsInFinalize returns true iff this Stage ends with a FinalizingTask
	EndsInCollect() bool                                                                                             // EndsInCollect returns true iff this Stage represents a collect task
	GetCollectionLimit() int64                                                                                       // GetCollectionLimit returns the maximum number of Rows to collect
}
