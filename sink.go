package flowsome

import (
	"context"
	"io"
)

// A Sink is a destination for a Table
type Sink interface {
	Write(ctx context.Context, table Table) error
	ToString() string // for logging
}

// A TableEncoder serializes a Table into a byte stream
type TableEncoder interface {
	Encode(w io.Writer, table Table) error
}
