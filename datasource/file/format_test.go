package file

import (
	"testing"

	"github.com/flowsome/flowsome/errors"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"data/trips.csv":         CSV,
		"data/trips.TSV":         TSV,
		"data/*.jsonl":           JSONL,
		"data/events.ndjson.lz4": JSONL,
		"data/trips.csv.lz4":     CSV,
		"warehouse/t.parquet":    Parquet,
	}
	for path, expected := range cases {
		f, err := DetectFormat(path)
		require.Nil(t, err, path)
		require.Equal(t, expected, f, path)
	}
}

func TestDetectFormatUnsupported(t *testing.T) {
	_, err := DetectFormat("data/trips.xlsx")
	require.NotNil(t, err)
	var unsupported *errors.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	_, err = DetectFormat("data/trips")
	require.ErrorAs(t, err, &unsupported)
}
