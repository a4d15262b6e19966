package executor

import (
	"context"
	"fmt"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/dataframe"
	"github.com/flowsome/flowsome/internal/stats"
	itypes "github.com/flowsome/flowsome/internal/types"
	"github.com/rs/zerolog/log"
)

// Result is the output of executing a DataFrame
type Result struct {
	Table      flowsome.Table             // the collected output
	Stats      flowsome.RuntimeStatistics // statistics about the execution
	ExecutorID string                     // the unique ID of the execution
}

// Run executes a DataFrame, returning its output as a Table. The DataFrame is not
// modified, and may be executed again.
func Run(ctx context.Context, frame flowsome.DataFrame, opts *Options) (*Result, error) {
	plan, conf, err := optimize(frame, opts)
	if err != nil {
		return nil, err
	}
	statsTracker := &stats.RunStatistics{}
	pe := dataframe.CreatePlanExecutor(plan, conf, statsTracker)
	log.Debug().
		Str("executor", pe.ID()).
		Str("strategy", string(conf.Strategy)).
		Int("stages", plan.Size()).
		Msg("running plan")
	table, err := pe.Run(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("executor", pe.ID()).
		Int("rows", table.NumRows()).
		Dur("runtime", statsTracker.GetRuntime()).
		Msg("plan complete")
	return &Result{Table: table, Stats: statsTracker, ExecutorID: pe.ID()}, nil
}

// Explain describes the Stages a DataFrame would be executed in, without executing it
func Explain(frame flowsome.DataFrame, opts *Options) (string, error) {
	plan, _, err := optimize(frame, opts)
	if err != nil {
		return "", err
	}
	return plan.ToString(), nil
}

func optimize(frame flowsome.DataFrame, opts *Options) (itypes.Plan, *itypes.PlanExecutorConfig, error) {
	if frame == nil {
		return nil, nil, fmt.Errorf("DataFrame must not be nil")
	}
	if opts == nil {
		opts = &Options{}
	} else {
		opts = CloneOptions(opts)
	}
	if err := ensureDefaultOptionsValues(opts); err != nil {
		return nil, nil, err
	}
	eframe, ok := frame.(itypes.ExecutableDataFrame)
	if !ok {
		return nil, nil, fmt.Errorf("DataFrame was not created by a Flowsome DataSource")
	}
	conf := opts.toPlanExecutorConfig()
	plan, err := eframe.Optimize(conf.Strategy)
	if err != nil {
		return nil, nil, err
	}
	return plan, conf, nil
}
