package flowsome

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// ListColumnType is a column type which stores a list of values of a single element type.
// Values are represented as []interface{}, with nil entries for null elements.
type ListColumnType struct {
	Elem ColumnType
}

// Name returns the configuration name of this type
func (b *ListColumnType) Name() string {
	return fmt.Sprintf("list<%s>", b.Elem.Name())
}

// ToString produces a string representation of a ListColumnType value
func (b *ListColumnType) ToString(v interface{}) string {
	list := v.([]interface{})
	parts := make([]string, len(list))
	for i, e := range list {
		if e == nil {
			parts[i] = "nil"
		} else {
			parts[i] = b.Elem.ToString(e)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Coerce converts v into a []interface{}, coercing every element to Elem
func (b *ListColumnType) Coerce(v interface{}) (interface{}, error) {
	var items []interface{}
	switch tv := v.(type) {
	case []interface{}:
		items = tv
	case string:
		parsed := gjson.Parse(tv)
		if !parsed.IsArray() {
			return nil, fmt.Errorf("Value %#v is not a JSON array", tv)
		}
		for _, e := range parsed.Array() {
			items = append(items, e.Value())
		}
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, fmt.Errorf("Unable to coerce %#v to %s", v, b.Name())
		}
		items = make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = rv.Index(i).Interface()
		}
	}
	result := make([]interface{}, len(items))
	for i, e := range items {
		if e == nil {
			continue
		}
		ce, err := b.Elem.Coerce(e)
		if err != nil {
			return nil, fmt.Errorf("List element %d: %w", i, err)
		}
		result[i] = ce
	}
	return result, nil
}

// StructField is a named, typed member of a StructColumnType
type StructField struct {
	Name string
	Type ColumnType
}

// StructColumnType is a column type which stores a record of named fields.
// Values are represented as map[string]interface{}, with nil entries for null fields.
type StructColumnType struct {
	Fields []StructField
}

// Name returns the configuration name of this type
func (b *StructColumnType) Name() string {
	parts := make([]string, len(b.Fields))
	for i, f := range b.Fields {
		parts[i] = fmt.Sprintf("%s:%s", f.Name, f.Type.Name())
	}
	return fmt.Sprintf("struct<%s>", strings.Join(parts, ","))
}

// ToString produces a string representation of a StructColumnType value
func (b *StructColumnType) ToString(v interface{}) string {
	s, err := nestedToJSON(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}

// Coerce converts v into a map[string]interface{}, coercing every field to its declared type.
// Fields absent from v are null.
func (b *StructColumnType) Coerce(v interface{}) (interface{}, error) {
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, fmt.Errorf("Unable to coerce %#v to %s", v, b.Name())
	}
	result := make(map[string]interface{}, len(b.Fields))
	for _, f := range b.Fields {
		fv, ok := m[f.Name]
		if !ok || fv == nil {
			result[f.Name] = nil
			continue
		}
		cv, err := f.Type.Coerce(fv)
		if err != nil {
			return nil, fmt.Errorf("Struct field %s: %w", f.Name, err)
		}
		result[f.Name] = cv
	}
	return result, nil
}

// nestedToJSON renders lists and structs as JSON with deterministic key order
func nestedToJSON(v interface{}) (string, error) {
	buf, err := json.Marshal(normalizeForJSON(v))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func normalizeForJSON(v interface{}) interface{} {
	switch tv := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, e := range tv {
			out[i] = normalizeForJSON(e)
		}
		return out
	case map[string]interface{}:
		// encoding/json sorts map keys, which keeps the output stable
		out := make(map[string]interface{}, len(tv))
		for k, e := range tv {
			out[k] = normalizeForJSON(e)
		}
		return out
	case time.Time:
		return tv
	case fmt.Stringer:
		return tv.String()
	}
	return v
}
