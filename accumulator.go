package flowsome

// An Accumulator siphons data from Rows into a custom data structure,
// producing a single value. Accumulators are used to compute aggregations
// over groups of Rows. Null handling is the responsibility of each Accumulator.
type Accumulator interface {
	Accumulate(row Row) error // Accumulate adds a row to this Accumulator
	Value() interface{}       // Value returns the current result of this Accumulator, or nil for a null result
}
