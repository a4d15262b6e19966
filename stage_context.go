package flowsome

import "context"

// A StageContext is a Context enhanced to store Stage state during execution of a Stage
type StageContext interface {
	context.Context
	StageID() int                               // StageID returns the ID of the Stage being executed
	TargetPartitionSize() int                   // TargetPartitionSize returns the intended Partition maxSize for outgoing Partitions
	IgnoreRowErrors() bool                      // IgnoreRowErrors returns true iff failing Rows should be dropped rather than aborting execution
	Materialize(frame DataFrame) (Table, error) // Materialize executes another DataFrame with the same options, returning its result
}
