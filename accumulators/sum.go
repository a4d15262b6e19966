package accumulators

import (
	"fmt"

	"github.com/flowsome/flowsome"
	"github.com/shopspring/decimal"
)

type intSum struct {
	idx int
	sum int64
}

func (a *intSum) Accumulate(row flowsome.Row) error {
	v, err := row.GetAt(a.idx)
	if err != nil || v == nil {
		return err
	}
	iv := v.(int64)
	sum := a.sum + iv
	if (iv > 0 && sum < a.sum) || (iv < 0 && sum > a.sum) {
		return fmt.Errorf("int64 sum overflows adding %d to %d", iv, a.sum)
	}
	a.sum = sum
	return nil
}

func (a *intSum) Value() interface{} {
	return a.sum
}

type floatSum struct {
	idx int
	sum float64
}

func (a *floatSum) Accumulate(row flowsome.Row) error {
	v, err := row.GetAt(a.idx)
	if err != nil || v == nil {
		return err
	}
	a.sum += v.(float64)
	return nil
}

func (a *floatSum) Value() interface{} {
	return a.sum
}

type decimalSum struct {
	idx int
	sum decimal.Decimal
}

func (a *decimalSum) Accumulate(row flowsome.Row) error {
	v, err := row.GetAt(a.idx)
	if err != nil || v == nil {
		return err
	}
	a.sum = a.sum.Add(v.(decimal.Decimal))
	return nil
}

func (a *decimalSum) Value() interface{} {
	return a.sum
}

// Mean averages the non-null numeric values of a column
type Mean struct {
	idx   int
	sum   float64
	count int64
}

// Accumulate adds a row to this Accumulator
func (a *Mean) Accumulate(row flowsome.Row) error {
	v, err := row.GetAt(a.idx)
	if err != nil || v == nil {
		return err
	}
	switch tv := v.(type) {
	case int64:
		a.sum += float64(tv)
	case float64:
		a.sum += tv
	case decimal.Decimal:
		a.sum += tv.InexactFloat64()
	}
	a.count++
	return nil
}

// Value returns the mean, or nil if no values were accumulated
func (a *Mean) Value() interface{} {
	if a.count == 0 {
		return nil
	}
	return a.sum / float64(a.count)
}
