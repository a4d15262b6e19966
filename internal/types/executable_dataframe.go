package types

import (
	"github.com/flowsome/flowsome"
)

// An ExecutableDataFrame is a DataFrame that can be planned and executed
type ExecutableDataFrame interface {
	flowsome.DataFrame
	GetParent() flowsome.DataFrame                 // GetParent returns the parent DataFrame of a DataFrame, or nil for a root
	GetTaskType() flowsome.TaskType                // GetTaskType returns the type of the Task represented by this DataFrame
	Optimize(strategy Strategy) (Plan, error)      // Optimize splits the DataFrame chain into stages. Each stage's execution will be blocked until the completion of the previous stage
	AnalyzeSource() (flowsome.PartitionMap, error) // AnalyzeSource returns a PartitionMap for the source data for this DataFrame
}
