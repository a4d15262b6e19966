package testing

import (
	"context"
	"fmt"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/executor"
)

// LocalRunFrame runs a Dataframe with each strategy listed in opts (or both, if none is
// given), failing if the strategies disagree. Panics are recovered into errors.
func LocalRunFrame(ctx context.Context, frame flowsome.DataFrame, opts *executor.Options) (result *executor.Result, err error) {
	// handle panics
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = anErr
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()

	if opts == nil {
		opts = &executor.Options{}
	}
	if opts.Strategy != "" {
		return executor.Run(ctx, frame, opts)
	}
	var baseline *executor.Result
	for _, strategy := range []executor.Strategy{executor.Eager, executor.SinglePass} {
		sopts := executor.CloneOptions(opts)
		sopts.Strategy = strategy
		res, err := executor.Run(ctx, frame, sopts)
		if err != nil {
			return nil, fmt.Errorf("%s execution failed: %w", strategy, err)
		}
		if baseline == nil {
			baseline = res
			continue
		}
		if err := EqualTables(baseline.Table, res.Table); err != nil {
			return nil, fmt.Errorf("%s and %s execution disagree: %w", executor.Eager, strategy, err)
		}
	}
	return baseline, nil
}

// EqualTables returns nil iff two Tables have the same Schema and the same Rows, in order
func EqualTables(a flowsome.Table, b flowsome.Table) error {
	if err := a.Schema().Equals(b.Schema()); err != nil {
		return err
	}
	if a.NumRows() != b.NumRows() {
		return fmt.Errorf("Tables have %d and %d rows", a.NumRows(), b.NumRows())
	}
	for i := 0; i < a.NumRows(); i++ {
		ar, br := a.GetRow(i).ToString(), b.GetRow(i).ToString()
		if ar != br {
			return fmt.Errorf("Row %d differs: %s != %s", i, ar, br)
		}
	}
	return nil
}

// Rows returns the values of every Row of a Table, in order
func Rows(table flowsome.Table) [][]interface{} {
	rows := make([][]interface{}, table.NumRows())
	for i := range rows {
		rows[i] = table.GetRow(i).Values()
	}
	return rows
}
