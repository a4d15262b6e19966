package types

import "github.com/flowsome/flowsome"

// Strategy determines how a Plan is divided into Stages
type Strategy string

const (
	// EagerStrategy executes every task as its own Stage, materializing its output fully
	EagerStrategy Strategy = "eager"
	// SinglePassStrategy fuses row-wise tasks into Stages which stream Partitions from the source,
	// ending Stages only at FinalizingTasks
	SinglePassStrategy Strategy = "single_pass"
)

// A Plan is an execution plan for a DataFrame
type Plan interface {
	Size() int                         // returns the number of stages
	GetStage(idx int) Stage            // GetStage returns a particular Stage in this Plan
	Parser() flowsome.DataSourceParser // Parser returns this Plan's DataSourceParser
	Source() flowsome.DataSource       // Source returns this Plan's DataSource
	SourceSchema() flowsome.Schema     // SourceSchema returns the Schema of the data produced by this Plan's DataSource
	Strategy() Strategy                // Strategy returns the Strategy this Plan was optimized for
	ToString() string                  // ToString returns a human-readable description of this Plan
}
