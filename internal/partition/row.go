package partition

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	"github.com/shopspring/decimal"
)

// rowImpl is a representation of a single row of tabular data,
// (a slice of a Partition), along with a reference to the
// Schema for that row. In practice, users of Row will call its
// getter and setter methods to retrieve, manipulate and store data
type rowImpl struct {
	values []interface{} // likely shared with a partition
	schema flowsome.Schema
}

// CreateRow builds a new row from a slice of values and a schema
func CreateRow(values []interface{}, schema flowsome.Schema) flowsome.Row {
	return &rowImpl{values: values, schema: schema}
}

// Schema returns a read-only copy of the schema for a row
func (r *rowImpl) Schema() flowsome.Schema {
	return r.schema
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	r.schema.ForEachColumn(func(name string, col flowsome.Column) error {
		var val string
		v := r.values[col.Index()]
		if v == nil {
			val = "nil"
		} else {
			val = col.Type().ToString(v)
		}
		if col.Index() > 0 {
			fmt.Fprint(&res, ", ")
		}
		fmt.Fprintf(&res, "\"%s\": %s", name, val)
		return nil
	})
	fmt.Fprint(&res, "}")
	return res.String()
}

// Values returns a copy of the positional values of this row
func (r *rowImpl) Values() []interface{} {
	values := make([]interface{}, len(r.values))
	copy(values, r.values)
	return values
}

// IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
func (r *rowImpl) IsNil(colName string) bool {
	col, err := r.schema.GetColumn(colName)
	if err != nil {
		return false
	}
	return r.values[col.Index()] == nil
}

// SetNil sets the given column value to nil within this row
func (r *rowImpl) SetNil(colName string) error {
	col, err := r.schema.GetColumn(colName)
	if err != nil {
		return err
	}
	r.values[col.Index()] = nil
	return nil
}

// Get returns the value of any column as an interface{}, if it exists
func (r *rowImpl) Get(colName string) (interface{}, error) {
	col, err := r.schema.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	return r.values[col.Index()], nil
}

// GetAt returns the value of the column at position idx
func (r *rowImpl) GetAt(idx int) (interface{}, error) {
	if idx < 0 || idx >= len(r.values) {
		return nil, fmt.Errorf("Row does not contain a column at position %d", idx)
	}
	return r.values[idx], nil
}

// getTyped retrieves a non-nil value of a column, checking its ColumnType
func (r *rowImpl) getTyped(colName string, expected flowsome.ColumnType) (interface{}, error) {
	col, err := r.schema.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	if reflect.TypeOf(col.Type()) != reflect.TypeOf(expected) {
		return nil, fmt.Errorf("Column %s is of type %s, not %s", colName, col.Type().Name(), expected.Name())
	}
	v := r.values[col.Index()]
	if v == nil {
		return nil, errors.NilValueError{Name: colName}
	}
	return v, nil
}

// GetBool retrieves a single bool from the column with the given name.
func (r *rowImpl) GetBool(colName string) (bool, error) {
	v, err := r.getTyped(colName, &flowsome.BoolColumnType{})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// GetInt64 retrieves a single int64 from the column with the given name
func (r *rowImpl) GetInt64(colName string) (int64, error) {
	v, err := r.getTyped(colName, &flowsome.Int64ColumnType{})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// GetFloat64 retrieves a single float64 from the column with the given name
func (r *rowImpl) GetFloat64(colName string) (float64, error) {
	v, err := r.getTyped(colName, &flowsome.Float64ColumnType{})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// GetString retrieves a single string from the column with the given name
func (r *rowImpl) GetString(colName string) (string, error) {
	v, err := r.getTyped(colName, &flowsome.StringColumnType{})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// GetDecimal retrieves a single decimal from the column with the given name
func (r *rowImpl) GetDecimal(colName string) (decimal.Decimal, error) {
	v, err := r.getTyped(colName, &flowsome.DecimalColumnType{})
	if err != nil {
		return decimal.Zero, err
	}
	return v.(decimal.Decimal), nil
}

// GetTime retrieves a single Time from the column with the given name
func (r *rowImpl) GetTime(colName string) (time.Time, error) {
	v, err := r.getTyped(colName, &flowsome.TimeColumnType{})
	if err != nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}

// GetBytes retrieves a byte slice from the column with the given name
func (r *rowImpl) GetBytes(colName string) ([]byte, error) {
	v, err := r.getTyped(colName, &flowsome.BytesColumnType{})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// GetList retrieves a list from the column with the given name
func (r *rowImpl) GetList(colName string) ([]interface{}, error) {
	v, err := r.getTyped(colName, &flowsome.ListColumnType{})
	if err != nil {
		return nil, err
	}
	return v.([]interface{}), nil
}

// GetStruct retrieves a struct from the column with the given name
func (r *rowImpl) GetStruct(colName string) (map[string]interface{}, error) {
	v, err := r.getTyped(colName, &flowsome.StructColumnType{})
	if err != nil {
		return nil, err
	}
	return v.(map[string]interface{}), nil
}

// Set coerces value to the column's type and stores it. A nil value sets the column to nil.
func (r *rowImpl) Set(colName string, value interface{}) error {
	col, err := r.schema.GetColumn(colName)
	if err != nil {
		return err
	}
	return r.setColumn(col, value)
}

// SetAt is Set for the column at position idx
func (r *rowImpl) SetAt(idx int, value interface{}) error {
	col, err := r.schema.GetColumnAt(idx)
	if err != nil {
		return err
	}
	return r.setColumn(col, value)
}

func (r *rowImpl) setColumn(col flowsome.Column, value interface{}) error {
	if value == nil {
		r.values[col.Index()] = nil
		return nil
	}
	coerced, err := col.Type().Coerce(value)
	if err != nil {
		return fmt.Errorf("Column %s: %w", col.Name(), err)
	}
	r.values[col.Index()] = coerced
	return nil
}

// SetBool modifies a single bool from the column with the given name.
func (r *rowImpl) SetBool(colName string, value bool) error {
	return r.Set(colName, value)
}

// SetInt64 modifies a single int64 from the column with the given name.
func (r *rowImpl) SetInt64(colName string, value int64) error {
	return r.Set(colName, value)
}

// SetFloat64 modifies a single float64 from the column with the given name.
func (r *rowImpl) SetFloat64(colName string, value float64) error {
	return r.Set(colName, value)
}

// SetString modifies a single string from the column with the given name.
func (r *rowImpl) SetString(colName string, value string) error {
	return r.Set(colName, value)
}

// SetTime modifies a single Time from the column with the given name.
func (r *rowImpl) SetTime(colName string, value time.Time) error {
	return r.Set(colName, value)
}
