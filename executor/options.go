package executor

import (
	"fmt"
	"strings"

	"github.com/flowsome/flowsome/internal/partition"
	itypes "github.com/flowsome/flowsome/internal/types"
)

// Strategy describes how a DataFrame's operations are scheduled
type Strategy string

const (
	// Eager runs every operation as its own stage, materializing its complete output
	// before the next operation begins
	Eager Strategy = "eager"
	// SinglePass streams Partitions from the source through every row-wise operation,
	// materializing only at joins, groupings and sorts
	SinglePass Strategy = "single_pass"
)

// ParseStrategy parses the configuration name of a Strategy
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "single_pass", "single-pass", "singlepass", "streaming":
		return SinglePass, nil
	case "eager":
		return Eager, nil
	}
	return "", fmt.Errorf("Unknown execution strategy %q", name)
}

// Options configure the execution of a DataFrame
type Options struct {
	Strategy        Strategy // how operations are scheduled. Defaults to SinglePass
	PartitionSize   int      // the maximum number of Rows in Partitions produced during execution. Defaults to 128
	IgnoreRowErrors bool     // iff true, log row transformation errors and drop the Row instead of failing immediately
}

// CloneOptions makes a copy of an Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		Strategy:        opts.Strategy,
		PartitionSize:   opts.PartitionSize,
		IgnoreRowErrors: opts.IgnoreRowErrors,
	}
}

func ensureDefaultOptionsValues(opts *Options) error {
	if opts.Strategy == "" {
		opts.Strategy = SinglePass
	}
	if opts.Strategy != Eager && opts.Strategy != SinglePass {
		return fmt.Errorf("Unknown execution strategy %q", opts.Strategy)
	}
	if opts.PartitionSize < 0 {
		return fmt.Errorf("Options.PartitionSize must not be negative")
	}
	if opts.PartitionSize == 0 {
		opts.PartitionSize = partition.DefaultMaxRows
	}
	return nil
}

// toPlanExecutorConfig converts Options into internal executor configuration
func (o *Options) toPlanExecutorConfig() *itypes.PlanExecutorConfig {
	strategy := itypes.SinglePassStrategy
	if o.Strategy == Eager {
		strategy = itypes.EagerStrategy
	}
	return &itypes.PlanExecutorConfig{
		Strategy:        strategy,
		PartitionSize:   o.PartitionSize,
		IgnoreRowErrors: o.IgnoreRowErrors,
	}
}
