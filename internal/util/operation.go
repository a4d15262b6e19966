package util

import (
	"fmt"

	"github.com/flowsome/flowsome"
)

// SafeMapOperation wraps a MapOperation such that panics are recovered and nice error messages are constructed
func SafeMapOperation(mapOp flowsome.MapOperation) (safeMapOp flowsome.MapOperation) {
	return func(row flowsome.Row) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Map Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Map Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Map Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		err = mapOp(row)
		return
	}
}

// SafeFilterOperation wraps a FilterOperation such that panics are recovered and nice error messages are constructed
func SafeFilterOperation(filterOp flowsome.FilterOperation) (safeFilterOp flowsome.FilterOperation) {
	return func(row flowsome.Row) (shouldKeep bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Filter Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Filter Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Filter Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		shouldKeep, err = filterOp(row)
		return
	}
}

// SafeReshapeOperation wraps a ReshapeOperation such that panics are recovered and nice error messages are constructed
func SafeReshapeOperation(reshapeOp flowsome.ReshapeOperation) (safeReshapeOp flowsome.ReshapeOperation) {
	return func(in flowsome.Row, out flowsome.Row) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Reshape Panic: %w\nRow: %s\n%s", anErr, in.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Reshape Panic: %v\nRow: %s\n%s", r, in.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Reshape Error: %w\nRow: %s", err, in.ToString())
			}
		}()
		err = reshapeOp(in, out)
		return
	}
}

// SafeJoinPredicate wraps a JoinPredicate such that panics are recovered and nice error messages are constructed
func SafeJoinPredicate(pred flowsome.JoinPredicate) (safePred flowsome.JoinPredicate) {
	return func(lrow flowsome.Row, rrow flowsome.Row) (matches bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Join Panic: %w\nLRow: %s\nRRow: %s\n%s", anErr, lrow.ToString(), rrow.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Join Panic: %v\nLRow: %s\nRRow: %s\n%s", r, lrow.ToString(), rrow.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Join Error: %w\nLRow: %s\nRRow: %s", err, lrow.ToString(), rrow.ToString())
			}
		}()
		matches, err = pred(lrow, rrow)
		return
	}
}
