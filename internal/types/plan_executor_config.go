package types

// PlanExecutorConfig configures the execution of a plan
type PlanExecutorConfig struct {
	Strategy        Strategy // how the plan was divided into stages
	PartitionSize   int      // the maximum number of rows in partitions produced by finalizing tasks and materialization
	IgnoreRowErrors bool     // iff true, log row transformation errors instead of failing immediately
}
