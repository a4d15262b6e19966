package dataframe

import (
	"fmt"
	"strings"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/stats"
	itypes "github.com/flowsome/flowsome/internal/types"
)

// planImpl is an optimized execution Plan for a DataFrame
type planImpl struct {
	stages       []*stageImpl
	parser       flowsome.DataSourceParser
	source       flowsome.DataSource
	sourceSchema flowsome.Schema
	strategy     itypes.Strategy
}

// Size returns the number of stages in this Plan
func (p *planImpl) Size() int {
	return len(p.stages)
}

// GetStage returns a particular Stage in this Plan
func (p *planImpl) GetStage(idx int) itypes.Stage {
	return p.stages[idx]
}

// Parser returns this Plan's DataSourceParser
func (p *planImpl) Parser() flowsome.DataSourceParser {
	return p.parser
}

// Source returns this Plan's DataSource
func (p *planImpl) Source() flowsome.DataSource {
	return p.source
}

// SourceSchema returns the Schema of the data produced by this Plan's DataSource
func (p *planImpl) SourceSchema() flowsome.Schema {
	return p.sourceSchema
}

// Strategy returns the Strategy this Plan was optimized for
func (p *planImpl) Strategy() itypes.Strategy {
	return p.strategy
}

// ToString returns a human-readable description of this Plan
func (p *planImpl) ToString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Plan (%s, %d stages)\n", p.strategy, len(p.stages))
	fmt.Fprintf(&sb, "Source: %s\n", p.sourceSchema.ToString())
	for _, s := range p.stages {
		sb.WriteString(s.toString())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Execute creates a planExecutor for this Plan
func (p *planImpl) Execute(conf *itypes.PlanExecutorConfig, statsTracker *stats.RunStatistics) itypes.PlanExecutor {
	return CreatePlanExecutor(p, conf, statsTracker)
}
