package flowsome

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ColumnType is an interface which is implemented to define supported column types.
// Flowsome provides a variety of built-in types in this package.
type ColumnType interface {
	Name() string                              // Name returns the configuration name of this type (e.g. int64, list<string>)
	ToString(v interface{}) string             // ToString produces a string representation of a value of this type
	Coerce(v interface{}) (interface{}, error) // Coerce converts an arbitrary value into the canonical representation of this type
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Name returns the configuration name of this type
func (b *BoolColumnType) Name() string {
	return "bool"
}

// ToString produces a string representation of a value of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return strconv.FormatBool(v.(bool))
}

// Coerce converts v into a bool
func (b *BoolColumnType) Coerce(v interface{}) (interface{}, error) {
	return cast.ToBoolE(v)
}

// Int64ColumnType is a column type which stores an int64 value
type Int64ColumnType struct{}

// Name returns the configuration name of this type
func (b *Int64ColumnType) Name() string {
	return "int64"
}

// ToString produces a string representation of a value of an Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return strconv.FormatInt(v.(int64), 10)
}

// Coerce converts v into an int64. Values with a fractional part, and values
// outside the range of an int64, are rejected.
func (b *Int64ColumnType) Coerce(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case string:
		trimmed := strings.TrimSpace(tv)
		ival, err := strconv.ParseInt(trimmed, 10, 64)
		if err == nil {
			return ival, nil
		} else if errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("Value %s is out of range for int64", trimmed)
		}
		// accept integral floats such as "3.0"
		fval, ferr := strconv.ParseFloat(trimmed, 64)
		if ferr != nil {
			return nil, fmt.Errorf("Unable to coerce %#v to int64", v)
		}
		return floatToInt64(fval)
	case decimal.Decimal:
		if !tv.IsInteger() || !tv.BigInt().IsInt64() {
			return nil, fmt.Errorf("Unable to coerce decimal %s to int64 without loss", tv.String())
		}
		return tv.IntPart(), nil
	case float64:
		return floatToInt64(tv)
	case float32:
		return floatToInt64(float64(tv))
	case uint64:
		if tv > math.MaxInt64 {
			return nil, fmt.Errorf("Value %d is out of range for int64", tv)
		}
		return int64(tv), nil
	case uint:
		return b.Coerce(uint64(tv))
	}
	return cast.ToInt64E(v)
}

// two63 is the smallest positive float64 which does not fit in an int64
const two63 = float64(1 << 63)

func floatToInt64(f float64) (interface{}, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < -two63 || f >= two63 {
		return nil, fmt.Errorf("Unable to coerce %v to int64 without loss", f)
	}
	return int64(f), nil
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Name returns the configuration name of this type
func (b *Float64ColumnType) Name() string {
	return "float64"
}

// ToString produces a string representation of a value of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return strconv.FormatFloat(v.(float64), 'g', -1, 64)
}

// Coerce converts v into a float64
func (b *Float64ColumnType) Coerce(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case string:
		return strconv.ParseFloat(strings.TrimSpace(tv), 64)
	case decimal.Decimal:
		return tv.InexactFloat64(), nil
	case interface{ Float64() float64 }:
		return tv.Float64(), nil
	}
	return cast.ToFloat64E(v)
}

// StringColumnType is a column type which stores a string value
type StringColumnType struct{}

// Name returns the configuration name of this type
func (b *StringColumnType) Name() string {
	return "string"
}

// ToString produces a string representation of a StringColumnType value
func (b *StringColumnType) ToString(v interface{}) string {
	return strconv.Quote(v.(string))
}

// Coerce converts v into a string
func (b *StringColumnType) Coerce(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case []byte:
		return string(tv), nil
	case time.Time:
		return tv.Format(time.RFC3339Nano), nil
	case []interface{}, map[string]interface{}:
		return nestedToJSON(tv)
	}
	return cast.ToStringE(v)
}

// DecimalColumnType is a column type which stores an arbitrary-precision decimal value
type DecimalColumnType struct{}

// Name returns the configuration name of this type
func (b *DecimalColumnType) Name() string {
	return "decimal"
}

// ToString produces a string representation of a DecimalColumnType value
func (b *DecimalColumnType) ToString(v interface{}) string {
	return v.(decimal.Decimal).String()
}

// Coerce converts v into a decimal.Decimal
func (b *DecimalColumnType) Coerce(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case decimal.Decimal:
		return tv, nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(tv))
	case []byte:
		return decimal.NewFromString(strings.TrimSpace(string(tv)))
	case float64:
		if math.IsNaN(tv) || math.IsInf(tv, 0) {
			return nil, fmt.Errorf("Unable to coerce %v to decimal", tv)
		}
		return decimal.NewFromFloat(tv), nil
	case float32:
		if math.IsNaN(float64(tv)) || math.IsInf(float64(tv), 0) {
			return nil, fmt.Errorf("Unable to coerce %v to decimal", tv)
		}
		return decimal.NewFromFloat32(tv), nil
	case int64:
		return decimal.NewFromInt(tv), nil
	case fmt.Stringer:
		return decimal.NewFromString(tv.String())
	case interface{ Float64() float64 }:
		return decimal.NewFromFloat(tv.Float64()), nil
	}
	ival, err := cast.ToInt64E(v)
	if err != nil {
		return nil, fmt.Errorf("Unable to coerce %#v to decimal", v)
	}
	return decimal.NewFromInt(ival), nil
}

// TimeColumnType is a column type which stores a time.Time value.
// Format is used to parse and print string representations, and
// defaults to time.RFC3339.
type TimeColumnType struct {
	Format string
}

func (b *TimeColumnType) format() string {
	if b.Format == "" {
		return time.RFC3339
	}
	return b.Format
}

// Name returns the configuration name of this type
func (b *TimeColumnType) Name() string {
	if b.Format == "" {
		return "time"
	}
	return fmt.Sprintf("time<%s>", b.Format)
}

// ToString produces a string representation of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	return v.(time.Time).Format(b.format())
}

// Coerce converts v into a time.Time
func (b *TimeColumnType) Coerce(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case time.Time:
		return tv, nil
	case string:
		t, err := time.Parse(b.format(), strings.TrimSpace(tv))
		if err != nil {
			return nil, fmt.Errorf("Value %#v could not be parsed as datetime with format %s", tv, b.format())
		}
		return t, nil
	}
	return cast.ToTimeE(v)
}

// BytesColumnType is a column type which stores a variable-length byte slice
type BytesColumnType struct{}

// Name returns the configuration name of this type
func (b *BytesColumnType) Name() string {
	return "bytes"
}

// ToString produces a string representation of a BytesColumnType value
func (b *BytesColumnType) ToString(v interface{}) string {
	bytes := v.([]byte)
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, v := range bytes {
		// don't print more than 5 entries
		if i > 5 {
			fmt.Fprint(&res, " ...")
			break
		}
		if i > 0 {
			fmt.Fprint(&res, " ")
		}
		fmt.Fprintf(&res, "%x", v)
	}
	fmt.Fprint(&res, "]")
	return res.String()
}

// Coerce converts v into a []byte
func (b *BytesColumnType) Coerce(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case []byte:
		return tv, nil
	case string:
		return []byte(tv), nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// IsNumeric returns true iff values of colType can participate in arithmetic
func IsNumeric(colType ColumnType) bool {
	switch colType.(type) {
	case *Int64ColumnType, *Float64ColumnType, *DecimalColumnType:
		return true
	}
	return false
}

// SameColumnType returns true iff two ColumnTypes describe the same representation
func SameColumnType(a ColumnType, b ColumnType) bool {
	return a.Name() == b.Name()
}
