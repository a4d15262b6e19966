package flowsome

// A Task is an action or transformation applied
// to Partitions of tabular data.
type Task interface {
	RunInitialize(sctx StageContext) error
	RunWorker(sctx StageContext, previous OperablePartition) ([]OperablePartition, error)
}

// A FinalizingTask must observe every incoming Partition before it can
// produce (some of) its output. Stages end with FinalizingTasks.
type FinalizingTask interface {
	Task
	RunFinalize(sctx StageContext) ([]OperablePartition, error)
}

// A TerminatingTask can signal that it requires no further input
type TerminatingTask interface {
	Task
	IsExhausted() bool
}
