package accumulators

import (
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/util"
)

// Extremum tracks the smallest (sign -1) or largest (sign 1) non-null value of a column
type Extremum struct {
	idx   int
	sign  int
	value interface{}
}

// Accumulate adds a row to this Accumulator
func (a *Extremum) Accumulate(row flowsome.Row) error {
	v, err := row.GetAt(a.idx)
	if err != nil || v == nil {
		return err
	}
	if a.value == nil {
		a.value = v
		return nil
	}
	cmp, err := util.CompareValues(v, a.value)
	if err != nil {
		return err
	}
	if cmp*a.sign > 0 {
		a.value = v
	}
	return nil
}

// Value returns the extreme value, or nil if no values were accumulated
func (a *Extremum) Value() interface{} {
	return a.value
}

// First tracks the first non-null value of a column
type First struct {
	idx   int
	value interface{}
}

// Accumulate adds a row to this Accumulator
func (a *First) Accumulate(row flowsome.Row) error {
	if a.value != nil {
		return nil
	}
	v, err := row.GetAt(a.idx)
	if err != nil {
		return err
	}
	a.value = v
	return nil
}

// Value returns the first non-null value, or nil
func (a *First) Value() interface{} {
	return a.value
}

// Last tracks the last non-null value of a column
type Last struct {
	idx   int
	value interface{}
}

// Accumulate adds a row to this Accumulator
func (a *Last) Accumulate(row flowsome.Row) error {
	v, err := row.GetAt(a.idx)
	if err != nil || v == nil {
		return err
	}
	a.value = v
	return nil
}

// Value returns the last non-null value, or nil
func (a *Last) Value() interface{} {
	return a.value
}

// List gathers every value of a column, including nulls
type List struct {
	idx    int
	values []interface{}
}

// Accumulate adds a row to this Accumulator
func (a *List) Accumulate(row flowsome.Row) error {
	v, err := row.GetAt(a.idx)
	if err != nil {
		return err
	}
	a.values = append(a.values, v)
	return nil
}

// Value returns the gathered values
func (a *List) Value() interface{} {
	if a.values == nil {
		return []interface{}{}
	}
	return a.values
}
