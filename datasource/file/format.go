package file

import (
	"path/filepath"
	"strings"

	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/internal/compress"
)

// Format names a file format
type Format string

const (
	// CSV is comma-separated values
	CSV Format = "csv"
	// TSV is tab-separated values
	TSV Format = "tsv"
	// DSV is delimiter-separated values with a configured delimiter
	DSV Format = "dsv"
	// JSONL is newline-delimited JSON objects
	JSONL Format = "jsonl"
	// Parquet is Apache Parquet
	Parquet Format = "parquet"
)

// ParseFormat parses the configuration name of a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "csv":
		return CSV, nil
	case "tsv", "tab":
		return TSV, nil
	case "dsv", "txt":
		return DSV, nil
	case "jsonl", "ndjson", "json":
		return JSONL, nil
	case "parquet", "pq":
		return Parquet, nil
	}
	return "", &errors.UnsupportedFormatError{Format: name}
}

// DetectFormat determines the Format of a path (or glob) from its extension.
// Compression suffixes are ignored.
func DetectFormat(path string) (Format, error) {
	ext := filepath.Ext(compress.TrimSuffix(path))
	if ext == "" {
		return "", &errors.UnsupportedFormatError{Format: path}
	}
	return ParseFormat(ext)
}

// Delimiter returns the default delimiter for delimiter-separated Formats, or 0
func (f Format) Delimiter() rune {
	switch f {
	case CSV:
		return ','
	case TSV:
		return '\t'
	}
	return 0
}

// IsDelimited returns true iff f is a delimiter-separated Format
func (f Format) IsDelimited() bool {
	return f == CSV || f == TSV || f == DSV
}
