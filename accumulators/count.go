package accumulators

import (
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/pindex/hashmap"
	"github.com/flowsome/flowsome/internal/util"
)

// RowCount counts rows
type RowCount struct {
	count int64
}

// Accumulate adds a row to this Accumulator
func (a *RowCount) Accumulate(row flowsome.Row) error {
	a.count++
	return nil
}

// Value returns the row count from this Accumulator
func (a *RowCount) Value() interface{} {
	return a.count
}

// Count counts non-null values of a column
type Count struct {
	idx   int
	count int64
}

// Accumulate adds a row to this Accumulator
func (a *Count) Accumulate(row flowsome.Row) error {
	v, err := row.GetAt(a.idx)
	if err != nil {
		return err
	}
	if v != nil {
		a.count++
	}
	return nil
}

// Value returns the count of non-null values from this Accumulator
func (a *Count) Value() interface{} {
	return a.count
}

// NUnique counts distinct non-null values of a column
type NUnique struct {
	idx  int
	seen *hashmap.Index
}

func newNUnique(idx int) *NUnique {
	return &NUnique{idx: idx, seen: hashmap.CreateIndex()}
}

// Accumulate adds a row to this Accumulator
func (a *NUnique) Accumulate(row flowsome.Row) error {
	v, err := row.GetAt(a.idx)
	if err != nil || v == nil {
		return err
	}
	key, err := util.EncodeKey([]interface{}{v})
	if err != nil {
		return err
	}
	a.seen.GetOrAssign(key, 0)
	return nil
}

// Value returns the number of distinct values from this Accumulator
func (a *NUnique) Value() interface{} {
	return int64(a.seen.NumKeys())
}
