package util

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/flowsome/flowsome"
	"github.com/shopspring/decimal"
)

// key tags distinguish value families within encoded keys
const (
	nilKeyTag byte = iota
	intKeyTag
	floatKeyTag
	stringKeyTag
	boolKeyTag
	timeKeyTag
	bytesKeyTag
	nestedKeyTag
)

// ValueFamily groups ColumnTypes whose values can be compared with each other
func ValueFamily(colType flowsome.ColumnType) string {
	switch colType.(type) {
	case *flowsome.Int64ColumnType, *flowsome.Float64ColumnType, *flowsome.DecimalColumnType:
		return "numeric"
	case *flowsome.StringColumnType:
		return "string"
	case *flowsome.BoolColumnType:
		return "bool"
	case *flowsome.TimeColumnType:
		return "time"
	case *flowsome.BytesColumnType:
		return "bytes"
	}
	return colType.Name()
}

// toFloat converts any numeric value into a float64
func toFloat(v interface{}) (float64, bool) {
	switch tv := v.(type) {
	case int64:
		return float64(tv), true
	case int:
		return float64(tv), true
	case int32:
		return float64(tv), true
	case float64:
		return tv, true
	case float32:
		return float64(tv), true
	case decimal.Decimal:
		return tv.InexactFloat64(), true
	}
	return 0, false
}

// CompareValues compares two non-nil values of the same family, returning
// -1, 0 or 1. Numbers of different representations are compared by value.
func CompareValues(a interface{}, b interface{}) (int, error) {
	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			return compareOrdered(av, bv), nil
		}
		if bv, ok := b.(decimal.Decimal); ok {
			return decimal.NewFromInt(av).Cmp(bv), nil
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), nil
		}
	case bool:
		if bv, ok := b.(bool); ok {
			if av == bv {
				return 0, nil
			} else if !av {
				return -1, nil
			}
			return 1, nil
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv), nil
		}
	case []byte:
		if bv, ok := b.([]byte); ok {
			return bytes.Compare(av, bv), nil
		}
	case decimal.Decimal:
		if bv, ok := b.(decimal.Decimal); ok {
			return av.Cmp(bv), nil
		}
		if bv, ok := b.(int64); ok {
			return av.Cmp(decimal.NewFromInt(bv)), nil
		}
		if f, ok := toFloat(b); ok {
			return compareDecimalFloat(av, f), nil
		}
	}
	if bd, ok := b.(decimal.Decimal); ok {
		if f, ok := toFloat(a); ok {
			return -compareDecimalFloat(bd, f), nil
		}
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return compareFloats(af, bf), nil
	}
	return 0, fmt.Errorf("Cannot compare values of types %T and %T", a, b)
}

// compareFloats orders NaN after every other number, and equal to itself
func compareFloats(a float64, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	return compareOrdered(a, b)
}

func compareDecimalFloat(d decimal.Decimal, f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 1) {
		return -1
	} else if math.IsInf(f, -1) {
		return 1
	}
	return d.Cmp(decimal.NewFromFloat(f))
}

func compareOrdered[T int64 | float64](a T, b T) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// EncodeKey produces a canonical byte representation of a tuple of values,
// suitable for hashing. Numerically equal values encode identically regardless
// of their representation, and nils encode as a distinct tag.
func EncodeKey(values []interface{}) ([]byte, error) {
	var buf bytes.Buffer
	var scratch [8]byte
	for _, v := range values {
		if err := encodeValue(&buf, scratch[:], v); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, scratch []byte, v interface{}) error {
	if v == nil {
		buf.WriteByte(nilKeyTag)
		return nil
	}
	if d, ok := v.(decimal.Decimal); ok {
		if d.IsInteger() && d.Abs().LessThan(decimal.NewFromInt(math.MaxInt64)) {
			v = d.IntPart()
		} else {
			v = d.InexactFloat64()
		}
	}
	if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
		v = int64(f)
	}
	switch tv := v.(type) {
	case int64:
		buf.WriteByte(intKeyTag)
		binary.BigEndian.PutUint64(scratch, uint64(tv))
		buf.Write(scratch)
	case float64:
		buf.WriteByte(floatKeyTag)
		binary.BigEndian.PutUint64(scratch, math.Float64bits(tv))
		buf.Write(scratch)
	case string:
		writeLengthPrefixed(buf, scratch, []byte(tv), stringKeyTag)
	case []byte:
		writeLengthPrefixed(buf, scratch, tv, bytesKeyTag)
	case bool:
		buf.WriteByte(boolKeyTag)
		if tv {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case time.Time:
		buf.WriteByte(timeKeyTag)
		binary.BigEndian.PutUint64(scratch, uint64(tv.UnixNano()))
		buf.Write(scratch)
	case []interface{}, map[string]interface{}:
		encoded, err := json.Marshal(tv)
		if err != nil {
			return err
		}
		writeLengthPrefixed(buf, scratch, encoded, nestedKeyTag)
	default:
		return fmt.Errorf("Cannot use value of type %T as a key", v)
	}
	return nil
}

func writeLengthPrefixed(buf *bytes.Buffer, scratch []byte, data []byte, tag byte) {
	buf.WriteByte(tag)
	binary.BigEndian.PutUint32(scratch[:4], uint32(len(data)))
	buf.Write(scratch[:4])
	buf.Write(data)
}
