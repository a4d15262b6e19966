package flowsome

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about a running Flowsome pipeline
type RuntimeStatistics interface {
	// GetStartTime returns the start time of the Flowsome pipeline
	GetStartTime() time.Time
	// GetRuntime returns the running time of the Flowsome pipeline
	GetRuntime() time.Duration
	// GetNumRowsProcessed returns the number of Rows which have been processed so far, counted by stage
	GetNumRowsProcessed() []int64
	// GetNumPartitionsProcessed returns the number of Partitions which have been processed so far, counted by stage
	GetNumPartitionsProcessed() []int64
	// GetNumRowsEmitted returns the number of Rows which left each stage
	GetNumRowsEmitted() []int64
	// GetCurrentPartitionProcessingTime returns a rolling average of partition processing time
	GetCurrentPartitionProcessingTime() time.Duration
	// GetStageRuntimes returns all recorded stage runtimes
	GetStageRuntimes() []time.Duration
	// GetStageTransformRuntimes returns all recorded stage transform-phase runtimes
	GetStageTransformRuntimes() []time.Duration
	// GetStageFinalizeRuntimes returns all recorded stage finalize-phase runtimes
	GetStageFinalizeRuntimes() []time.Duration
}
