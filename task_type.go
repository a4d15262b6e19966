package flowsome

// TaskType describes the type of a Task, used internally to control behaviour
type TaskType string

const (
	// NoOpTaskType indicates that this task does not manipulate data
	NoOpTaskType TaskType = "no_op"
	// ExtractTaskType indicates that this task sources data from a DataSource
	ExtractTaskType TaskType = "extract"
	// MapTaskType indicates that this task triggers a Map
	MapTaskType TaskType = "map"
	// ProjectTaskType indicates that this task changes the set or order of columns
	ProjectTaskType TaskType = "project"
	// FilterTaskType indicates that this task triggers a Filter
	FilterTaskType TaskType = "filter"
	// LimitTaskType indicates that this task truncates the stream
	LimitTaskType TaskType = "limit"
	// JoinTaskType indicates that this task triggers a Join
	JoinTaskType TaskType = "join"
	// GroupTaskType indicates that this task triggers a grouped Aggregation
	GroupTaskType TaskType = "group"
	// SortTaskType indicates that this task triggers a Sort
	SortTaskType TaskType = "sort"
	// CollectTaskType indicates that this task triggers a Collect
	CollectTaskType TaskType = "collect"
)
