package accumulators

import (
	"github.com/flowsome/flowsome"
)

// Compose returns a factory for Composed Accumulators
func Compose(faccs ...flowsome.AccumulatorFactory) flowsome.AccumulatorFactory {
	return func() flowsome.Accumulator {
		accs := make([]flowsome.Accumulator, len(faccs))
		for i, f := range faccs {
			accs[i] = f()
		}
		return &Composed{accs: accs}
	}
}

// Composed composes other Accumulators
type Composed struct {
	accs []flowsome.Accumulator
}

// GetResults returns the contained Accumulators, so that their results may be accessed
func (c *Composed) GetResults() []flowsome.Accumulator {
	return c.accs
}

// Accumulate adds a row to all contained Accumulators
func (c *Composed) Accumulate(row flowsome.Row) error {
	for _, a := range c.accs {
		err := a.Accumulate(row)
		if err != nil {
			return err
		}
	}
	return nil
}

// Value returns the values of all contained Accumulators, in order
func (c *Composed) Value() interface{} {
	values := make([]interface{}, len(c.accs))
	for i, a := range c.accs {
		values[i] = a.Value()
	}
	return values
}
