package flowsome

// Schema is an ordered set of uniquely named, typed Columns.
// It allows one to look up columns by name or position,
// define new columns, remove columns, etc. Mutating methods
// modify the receiver, so operations must call them on a Clone().
type Schema interface {
	Equals(otherSchema Schema) error
	Clone() Schema
	NumColumns() int
	GetColumn(colName string) (col Column, err error)
	GetColumnAt(idx int) (col Column, err error)
	HasColumn(colName string) bool
	Resolve(ref ColumnRef) (col Column, err error) // Resolve returns the Column referenced by ref, or a SchemaError
	CreateColumn(colName string, columnType ColumnType) (newSchema Schema, err error)
	RenameColumn(oldName string, newName string) (newSchema Schema, err error)
	RemoveColumn(colName string) (newSchema Schema, err error)
	CastColumn(colName string, columnType ColumnType) (newSchema Schema, err error)
	Project(colNames []string) (newSchema Schema, err error) // Project produces a new Schema containing only colNames, in the given order
	ColumnNames() []string
	ColumnTypes() []ColumnType
	ForEachColumn(fn func(name string, col Column) error) error
	ToString() string
}
