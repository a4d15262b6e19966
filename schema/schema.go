package schema

import (
	"fmt"
	"strings"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
)

// column describes the name, position and type of a field in a Row.
type column struct {
	name    string
	idx     int
	colType flowsome.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() flowsome.Column {
	return &column{c.name, c.idx, c.colType}
}

// Name returns the name of this Column within a Schema
func (c *column) Name() string {
	return c.name
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// SetIndex modifies the index of this Column within a Schema
func (c *column) SetIndex(newIndex int) {
	c.idx = newIndex
}

// Type returns the ColumnType of this Column
func (c *column) Type() flowsome.ColumnType {
	return c.colType
}

// schema is an ordered set of uniquely named Columns,
// indexed by name for fast lookup.
type schema struct {
	columns []*column
	byName  map[string]*column
}

// CreateSchema is a factory for Schemas
func CreateSchema() flowsome.Schema {
	return &schema{
		columns: make([]*column, 0),
		byName:  make(map[string]*column),
	}
}

// CreateSchemaFromColumns is a factory for Schemas with a known set of columns
func CreateSchemaFromColumns(names []string, types []flowsome.ColumnType) (flowsome.Schema, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("Received %d column names but %d column types", len(names), len(types))
	}
	s := CreateSchema()
	for i, name := range names {
		if _, err := s.CreateColumn(name, types[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Equals returns nil iff this and another Schema have the same names and types, in the same order
func (s *schema) Equals(otherSchema flowsome.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	for i, col := range s.columns {
		other, err := otherSchema.GetColumnAt(i)
		if err != nil {
			return err
		}
		if other.Name() != col.name {
			return fmt.Errorf("Column %d names do not match: %s != %s", i, col.name, other.Name())
		}
		if !flowsome.SameColumnType(col.colType, other.Type()) {
			return fmt.Errorf("Column %s types do not match", col.name)
		}
	}
	return nil
}

// Clone returns a copy of this Schema
func (s *schema) Clone() flowsome.Schema {
	newSchema := &schema{
		columns: make([]*column, len(s.columns)),
		byName:  make(map[string]*column, len(s.columns)),
	}
	for i, col := range s.columns {
		c := &column{col.name, col.idx, col.colType}
		newSchema.columns[i] = c
		newSchema.byName[c.name] = c
	}
	return newSchema
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.columns)
}

// GetColumn returns the column with the given name
func (s *schema) GetColumn(colName string) (flowsome.Column, error) {
	col, ok := s.byName[colName]
	if !ok {
		return nil, &errors.SchemaError{Column: colName, Reason: "Schema does not contain column"}
	}
	return col, nil
}

// GetColumnAt returns the column at the given position
func (s *schema) GetColumnAt(idx int) (flowsome.Column, error) {
	if idx < 0 || idx >= len(s.columns) {
		return nil, &errors.SchemaError{
			Column: fmt.Sprintf("#%d", idx),
			Reason: fmt.Sprintf("position out of range for schema with %d columns", len(s.columns)),
		}
	}
	return s.columns[idx], nil
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.byName[colName]
	return ok
}

// Resolve returns the Column referenced by ref
func (s *schema) Resolve(ref flowsome.ColumnRef) (flowsome.Column, error) {
	if ref.IsPositional() {
		return s.GetColumnAt(ref.Position())
	}
	return s.GetColumn(ref.Name())
}

// CreateColumn defines a new column at the end of the Schema
func (s *schema) CreateColumn(colName string, columnType flowsome.ColumnType) (flowsome.Schema, error) {
	if colName == "" {
		return nil, &errors.SchemaError{Reason: "column names must not be empty"}
	}
	if columnType == nil {
		return nil, &errors.SchemaError{Column: colName, Reason: "column type must not be nil"}
	}
	if s.HasColumn(colName) {
		return nil, &errors.SchemaError{Column: colName, Reason: "Schema already contains column"}
	}
	col := &column{colName, len(s.columns), columnType}
	s.columns = append(s.columns, col)
	s.byName[colName] = col
	return s, nil
}

// RenameColumn renames a column within the Schema
func (s *schema) RenameColumn(oldName string, newName string) (flowsome.Schema, error) {
	col, ok := s.byName[oldName]
	if !ok {
		return nil, &errors.SchemaError{Column: oldName, Reason: "cannot rename column which does not exist"}
	}
	if oldName == newName {
		return s, nil
	}
	if newName == "" {
		return nil, &errors.SchemaError{Column: oldName, Reason: "cannot rename column to an empty name"}
	}
	if s.HasColumn(newName) {
		return nil, &errors.SchemaError{Column: newName, Reason: "cannot rename onto existing column"}
	}
	delete(s.byName, oldName)
	col.name = newName
	s.byName[newName] = col
	return s, nil
}

// RemoveColumn removes a column from the Schema, shifting later columns down
func (s *schema) RemoveColumn(colName string) (flowsome.Schema, error) {
	col, ok := s.byName[colName]
	if !ok {
		return nil, &errors.SchemaError{Column: colName, Reason: "cannot remove column which does not exist"}
	}
	delete(s.byName, colName)
	s.columns = append(s.columns[:col.idx], s.columns[col.idx+1:]...)
	for i := col.idx; i < len(s.columns); i++ {
		s.columns[i].SetIndex(i)
	}
	return s, nil
}

// CastColumn changes the ColumnType of a column within the Schema
func (s *schema) CastColumn(colName string, columnType flowsome.ColumnType) (flowsome.Schema, error) {
	col, ok := s.byName[colName]
	if !ok {
		return nil, &errors.SchemaError{Column: colName, Reason: "cannot cast column which does not exist"}
	}
	if columnType == nil {
		return nil, &errors.SchemaError{Column: colName, Reason: "column type must not be nil"}
	}
	col.colType = columnType
	return s, nil
}

// Project produces a new Schema containing only the named columns, in the given order
func (s *schema) Project(colNames []string) (flowsome.Schema, error) {
	newSchema := CreateSchema()
	for _, name := range colNames {
		col, err := s.GetColumn(name)
		if err != nil {
			return nil, err
		}
		if _, err := newSchema.CreateColumn(name, col.Type()); err != nil {
			return nil, &errors.SchemaError{Column: name, Reason: "column is referenced more than once"}
		}
	}
	return newSchema, nil
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.name
	}
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []flowsome.ColumnType {
	types := make([]flowsome.ColumnType, len(s.columns))
	for i, col := range s.columns {
		types[i] = col.colType
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema, in index order
func (s *schema) ForEachColumn(fn func(name string, col flowsome.Column) error) error {
	for _, col := range s.columns {
		err := fn(col.name, col)
		if err != nil {
			return err
		}
	}
	return nil
}

// ToString returns a string representation of this Schema
func (s *schema) ToString() string {
	parts := make([]string, len(s.columns))
	for i, col := range s.columns {
		parts[i] = fmt.Sprintf("%s: %s", col.name, col.colType.Name())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
