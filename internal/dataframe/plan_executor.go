package dataframe

import (
	"context"
	"fmt"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/internal/partition"
	"github.com/flowsome/flowsome/internal/stats"
	itypes "github.com/flowsome/flowsome/internal/types"
	uuid "github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

// planExecutorImpl executes a plan
type planExecutorImpl struct {
	id           string
	plan         itypes.Plan
	conf         *itypes.PlanExecutorConfig
	nextStage    int
	statsTracker *stats.RunStatistics
}

// CreatePlanExecutor is a factory for planExecutors
func CreatePlanExecutor(plan itypes.Plan, conf *itypes.PlanExecutorConfig, statsTracker *stats.RunStatistics) itypes.PlanExecutor {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate UUID")
	}
	if conf.PartitionSize <= 0 {
		conf.PartitionSize = partition.DefaultMaxRows
	}
	if statsTracker == nil {
		statsTracker = &stats.RunStatistics{}
	}
	return &planExecutorImpl{
		id:           id.String(),
		plan:         plan,
		conf:         conf,
		statsTracker: statsTracker,
	}
}

// ID returns the ID for this PlanExecutor
func (pe *planExecutorImpl) ID() string {
	return pe.id
}

// GetConf returns the configuration for this PlanExecutor
func (pe *planExecutorImpl) GetConf() *itypes.PlanExecutorConfig {
	return pe.conf
}

// GetStatistics returns statistics for the most recent Run
func (pe *planExecutorImpl) GetStatistics() flowsome.RuntimeStatistics {
	return pe.statsTracker
}

// HasNextStage forms an iterator for planExecutor Stages
func (pe *planExecutorImpl) HasNextStage() bool {
	return pe.nextStage < pe.plan.Size()
}

// GetNextStage forms an iterator for planExecutor Stages
func (pe *planExecutorImpl) GetNextStage() itypes.Stage {
	if pe.nextStage >= pe.plan.Size() {
		return nil
	}
	s := pe.plan.GetStage(pe.nextStage)
	pe.nextStage++
	return s
}

// GetCurrentStage returns the current stage without advancing the iterator, or nil if the iterator has never been advanced
func (pe *planExecutorImpl) GetCurrentStage() itypes.Stage {
	if pe.nextStage == 0 {
		return nil
	}
	return pe.plan.GetStage(pe.nextStage - 1)
}

// Run executes every Stage of the Plan in order. The first Stage streams Partitions from
// the DataSource; each later Stage consumes the output of the one before it.
func (pe *planExecutorImpl) Run(ctx context.Context) (flowsome.Table, error) {
	if pe.plan.Size() == 0 {
		return nil, fmt.Errorf("Plan has no stages")
	}
	pe.nextStage = 0
	pe.statsTracker.Start(pe.plan.Size())
	defer pe.statsTracker.Finish()

	pmap, err := pe.plan.Source().Analyze()
	if err != nil {
		return nil, fmt.Errorf("Unable to analyze data source: %w", err)
	}
	loaders := createPartitionLoaderIterator(pmap, pe.plan.Parser(), pe.plan.SourceSchema())
	defer loaders.Close()

	var incoming flowsome.PartitionIterator = loaders
	var outputs []flowsome.OperablePartition
	for pe.HasNextStage() {
		stage := pe.GetNextStage()
		outputs, err = pe.runStage(ctx, stage, incoming)
		if err != nil {
			return nil, err
		}
		if !pe.HasNextStage() {
			break
		}
		if pe.conf.Strategy == itypes.EagerStrategy {
			// materialize and re-split, so the next operation sees a complete, evenly partitioned input
			outputs = partition.SplitTable(partition.CreateTable(stage.OutgoingSchema(), outputs), pe.conf.PartitionSize)
		}
		incoming = CreatePartitionSliceIterator(outputs)
	}
	return partition.CreateTable(pe.GetCurrentStage().OutgoingSchema(), outputs), nil
}

// runStage applies a Stage to every Partition from incoming, followed by the Stage's finalization
func (pe *planExecutorImpl) runStage(ctx context.Context, stage itypes.Stage, incoming flowsome.PartitionIterator) ([]flowsome.OperablePartition, error) {
	sidx := stage.ID()
	log.Debug().
		Str("executor", pe.id).
		Int("stage", sidx).
		Interface("tasks", stage.TaskTypes()).
		Msg("starting stage")
	pe.statsTracker.StartStage()
	sctx := createStageContext(ctx, sidx, pe)
	if err := stage.WorkerInitialize(sctx); err != nil {
		return nil, err
	}

	outputs := []flowsome.OperablePartition{}
	pe.statsTracker.StartTransform()
	for incoming.HasNextPartition() && !stage.IsExhausted() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		part, err := incoming.NextPartition()
		if _, ok := err.(errors.NoMorePartitionsError); ok {
			// It's ok for a data source to throw this once, as HasNextPartition is just a hint
			break
		} else if err != nil {
			return nil, err
		}
		opart, ok := part.(flowsome.OperablePartition)
		if !ok {
			return nil, fmt.Errorf("Partition %s is not operable", part.ID())
		}
		pe.statsTracker.StartPartition()
		out, err := stage.WorkerExecute(sctx, opart)
		if err != nil {
			return nil, err
		}
		pe.statsTracker.EndPartition(sidx, opart.GetNumRows())
		outputs = appendNonEmpty(outputs, out)
	}
	pe.statsTracker.EndTransform(sidx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pe.statsTracker.StartFinalize()
	final, err := stage.WorkerFinalize(sctx)
	if err != nil {
		return nil, err
	}
	outputs = appendNonEmpty(outputs, final)
	pe.statsTracker.EndFinalize(sidx)

	numRows := 0
	for _, p := range outputs {
		numRows += p.GetNumRows()
	}
	pe.statsTracker.EndStage(sidx, numRows)
	log.Debug().
		Str("executor", pe.id).
		Int("stage", sidx).
		Int("rows", numRows).
		Int("partitions", len(outputs)).
		Msg("finished stage")
	return outputs, nil
}

// materialize executes another DataFrame with the same configuration as this planExecutor
func (pe *planExecutorImpl) materialize(ctx context.Context, frame flowsome.DataFrame) (flowsome.Table, error) {
	eframe, ok := frame.(itypes.ExecutableDataFrame)
	if !ok {
		return nil, fmt.Errorf("DataFrame cannot be executed")
	}
	plan, err := eframe.Optimize(pe.conf.Strategy)
	if err != nil {
		return nil, err
	}
	conf := *pe.conf
	log.Debug().Str("executor", pe.id).Int("stages", plan.Size()).Msg("materializing sub-plan")
	return CreatePlanExecutor(plan, &conf, nil).Run(ctx)
}

func appendNonEmpty(dst []flowsome.OperablePartition, parts []flowsome.OperablePartition) []flowsome.OperablePartition {
	for _, p := range parts {
		if p != nil && p.GetNumRows() > 0 {
			dst = append(dst, p)
		}
	}
	return dst
}
