package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/flowsome/flowsome"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// EscapeJSONPath escapes a key so that sjson treats it as a single literal path component
func EscapeJSONPath(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// JSONValue converts a non-nil column value into a value which encodes naturally as JSON
func JSONValue(colType flowsome.ColumnType, v interface{}) interface{} {
	switch ct := colType.(type) {
	case *flowsome.StructColumnType:
		if m, ok := v.(map[string]interface{}); ok {
			out := make(map[string]interface{}, len(m))
			for _, f := range ct.Fields {
				if fv := m[f.Name]; fv != nil {
					out[f.Name] = JSONValue(f.Type, fv)
				} else {
					out[f.Name] = nil
				}
			}
			return out
		}
	case *flowsome.ListColumnType:
		if l, ok := v.([]interface{}); ok {
			out := make([]interface{}, len(l))
			for i, e := range l {
				if e != nil {
					out[i] = JSONValue(ct.Elem, e)
				}
			}
			return out
		}
	case *flowsome.TimeColumnType, *flowsome.DecimalColumnType:
		return colType.ToString(v)
	}
	switch tv := v.(type) {
	case time.Time:
		return tv.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return tv.String()
	}
	return v
}

// SetJSONField sets a field of a JSON object to a column value, preserving the insertion order of fields
func SetJSONField(doc []byte, key string, colType flowsome.ColumnType, v interface{}) ([]byte, error) {
	path := EscapeJSONPath(key)
	if v == nil {
		return sjson.SetRawBytes(doc, path, []byte("null"))
	}
	if st, ok := colType.(*flowsome.StructColumnType); ok {
		// nested structs keep their declared field order
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("Value for %s is not a struct: %#v", key, v)
		}
		raw, err := StructToJSON(st, m)
		if err != nil {
			return nil, err
		}
		return sjson.SetRawBytes(doc, path, []byte(raw))
	}
	return sjson.SetBytes(doc, path, JSONValue(colType, v))
}

// StructToJSON encodes a struct value as a JSON object, with fields in declaration order
func StructToJSON(st *flowsome.StructColumnType, v map[string]interface{}) (string, error) {
	doc := []byte("{}")
	var err error
	for _, f := range st.Fields {
		doc, err = SetJSONField(doc, f.Name, f.Type, v[f.Name])
		if err != nil {
			return "", err
		}
	}
	return string(doc), nil
}

// ValueToJSON encodes a non-nil column value as JSON. Struct fields keep their declaration order.
func ValueToJSON(colType flowsome.ColumnType, v interface{}) (string, error) {
	switch ct := colType.(type) {
	case *flowsome.StructColumnType:
		m, ok := v.(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("Value is not a struct: %#v", v)
		}
		return StructToJSON(ct, m)
	case *flowsome.ListColumnType:
		l, ok := v.([]interface{})
		if !ok {
			return "", fmt.Errorf("Value is not a list: %#v", v)
		}
		doc := []byte("[]")
		for _, e := range l {
			raw := "null"
			if e != nil {
				var err error
				if raw, err = ValueToJSON(ct.Elem, e); err != nil {
					return "", err
				}
			}
			var err error
			if doc, err = sjson.SetRawBytes(doc, "-1", []byte(raw)); err != nil {
				return "", err
			}
		}
		return string(doc), nil
	}
	doc, err := sjson.SetBytes([]byte("{}"), "v", JSONValue(colType, v))
	if err != nil {
		return "", err
	}
	return gjson.GetBytes(doc, "v").Raw, nil
}
