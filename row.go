package flowsome

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is a representation of a single row of tabular data,
// (a slice of a Partition), along with a reference to the
// Schema for that row. In practice, users of Row will call its
// getter and setter methods to retrieve, manipulate and store data.
// Setters coerce values to the ColumnType of the target column.
type Row interface {
	Schema() Schema                                        // Schema returns a read-only copy of the schema for a row
	ToString() string                                      // ToString returns a string representation of this row
	Values() []interface{}                                 // Values returns a copy of the positional values of this row. Null values are nil.
	IsNil(colName string) bool                             // IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
	SetNil(colName string) error                           // SetNil sets the given column value to nil within this row
	Get(colName string) (col interface{}, err error)       // Get returns the value of any column as an interface{}, if it exists. Null values are returned as nil.
	GetAt(idx int) (col interface{}, err error)            // GetAt returns the value of the column at position idx
	GetBool(colName string) (col bool, err error)          // GetBool retrieves a single bool from the column with the given name.
	GetInt64(colName string) (col int64, err error)        // GetInt64 retrieves a single int64 from the column with the given name
	GetFloat64(colName string) (col float64, err error)    // GetFloat64 retrieves a single float64 from the column with the given name
	GetString(colName string) (col string, err error)      // GetString retrieves a single string from the column with the given name
	GetDecimal(colName string) (decimal.Decimal, error)    // GetDecimal retrieves a single decimal from the column with the given name
	GetTime(colName string) (col time.Time, err error)     // GetTime retrieves a single Time from the column with the given name
	GetBytes(colName string) (col []byte, err error)       // GetBytes retrieves a byte slice from the column with the given name
	GetList(colName string) (col []interface{}, err error) // GetList retrieves a list from the column with the given name
	GetStruct(colName string) (map[string]interface{}, error)
	Set(colName string, value interface{}) (err error)   // Set coerces value to the column's type and stores it. A nil value sets the column to nil.
	SetAt(idx int, value interface{}) (err error)        // SetAt is Set for the column at position idx
	SetBool(colName string, value bool) (err error)      // SetBool modifies a single bool from the column with the given name.
	SetInt64(colName string, value int64) (err error)    // SetInt64 modifies a single int64 from the column with the given name.
	SetFloat64(colName string, value float64) error      // SetFloat64 modifies a single float64 from the column with the given name.
	SetString(colName string, value string) (err error)  // SetString modifies a single string from the column with the given name.
	SetTime(colName string, value time.Time) (err error) // SetTime modifies a single Time from the column with the given name.
}
