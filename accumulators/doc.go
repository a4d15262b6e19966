// Package accumulators provides the aggregation functions available to GroupBy
package accumulators
