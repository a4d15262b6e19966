package flowsome

import "fmt"

// ColumnRef refers to a Column, either by name or by position. References
// are resolved against a Schema when an operation is added to a DataFrame.
type ColumnRef struct {
	name  string
	pos   int
	byPos bool
}

// Col references a Column by name
func Col(name string) ColumnRef {
	return ColumnRef{name: name}
}

// ColAt references a Column by its zero-based position
func ColAt(pos int) ColumnRef {
	return ColumnRef{pos: pos, byPos: true}
}

// Cols references several Columns by name
func Cols(names ...string) []ColumnRef {
	refs := make([]ColumnRef, len(names))
	for i, n := range names {
		refs[i] = Col(n)
	}
	return refs
}

// IsPositional returns true iff this ColumnRef refers to a position rather than a name
func (r ColumnRef) IsPositional() bool {
	return r.byPos
}

// Name returns the referenced name, or the empty string for positional references
func (r ColumnRef) Name() string {
	return r.name
}

// Position returns the referenced position, or -1 for named references
func (r ColumnRef) Position() int {
	if !r.byPos {
		return -1
	}
	return r.pos
}

// ToString returns a string representation of this ColumnRef
func (r ColumnRef) ToString() string {
	if r.byPos {
		return fmt.Sprintf("#%d", r.pos)
	}
	return r.name
}
