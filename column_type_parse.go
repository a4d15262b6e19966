package flowsome

import (
	"fmt"
	"strings"
)

// ParseColumnType parses the configuration name of a ColumnType, as
// returned by ColumnType.Name(). Nested types are written as
// list<elem> and struct<name:type,name:type>. Times accept an
// optional Go layout: time<2006-01-02>.
func ParseColumnType(name string) (ColumnType, error) {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)
	switch lower {
	case "bool", "boolean":
		return &BoolColumnType{}, nil
	case "int", "int64", "integer", "long":
		return &Int64ColumnType{}, nil
	case "float", "float64", "double":
		return &Float64ColumnType{}, nil
	case "str", "string", "text", "utf8":
		return &StringColumnType{}, nil
	case "decimal":
		return &DecimalColumnType{}, nil
	case "time", "datetime", "timestamp":
		return &TimeColumnType{}, nil
	case "date":
		return &TimeColumnType{Format: "2006-01-02"}, nil
	case "bytes", "binary":
		return &BytesColumnType{}, nil
	}
	open := strings.Index(name, "<")
	if open < 0 || !strings.HasSuffix(name, ">") {
		return nil, fmt.Errorf("Unknown column type %s", name)
	}
	kind := strings.ToLower(strings.TrimSpace(name[:open]))
	inner := name[open+1 : len(name)-1]
	switch kind {
	case "time":
		return &TimeColumnType{Format: inner}, nil
	case "list":
		elem, err := ParseColumnType(inner)
		if err != nil {
			return nil, err
		}
		return &ListColumnType{Elem: elem}, nil
	case "struct":
		fieldDefs, err := splitTopLevel(inner)
		if err != nil {
			return nil, fmt.Errorf("Malformed struct type %s: %w", name, err)
		}
		fields := make([]StructField, 0, len(fieldDefs))
		for _, def := range fieldDefs {
			sep := strings.Index(def, ":")
			if sep <= 0 {
				return nil, fmt.Errorf("Malformed struct field %q in %s", def, name)
			}
			fieldType, err := ParseColumnType(def[sep+1:])
			if err != nil {
				return nil, err
			}
			fields = append(fields, StructField{Name: strings.TrimSpace(def[:sep]), Type: fieldType})
		}
		return &StructColumnType{Fields: fields}, nil
	}
	return nil, fmt.Errorf("Unknown column type %s", name)
}

// splitTopLevel splits s on commas which are not nested within angle brackets
func splitTopLevel(s string) ([]string, error) {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced brackets")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced brackets")
	}
	if strings.TrimSpace(s[start:]) != "" {
		parts = append(parts, s[start:])
	}
	return parts, nil
}
