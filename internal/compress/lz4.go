package compress

import (
	"io"
	"strings"

	"github.com/pierrec/lz4"
)

// LZ4Suffix marks paths holding lz4-framed data
const LZ4Suffix = ".lz4"

// IsLZ4 returns true iff path names lz4-framed data
func IsLZ4(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), LZ4Suffix)
}

// TrimSuffix removes a compression suffix from path, if present
func TrimSuffix(path string) string {
	if IsLZ4(path) {
		return path[:len(path)-len(LZ4Suffix)]
	}
	return path
}

// NewReader decompresses r if path names compressed data, and otherwise returns r unchanged
func NewReader(path string, r io.Reader) io.Reader {
	if IsLZ4(path) {
		return lz4.NewReader(r)
	}
	return r
}

// NewWriter compresses into w if path names compressed data. Closing the result
// flushes any buffered data, but never closes w.
func NewWriter(path string, w io.Writer) io.WriteCloser {
	if IsLZ4(path) {
		return lz4.NewWriter(w)
	}
	return nopWriteCloser{w}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
