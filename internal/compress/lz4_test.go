package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLZ4RoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("a,b,c\n1,2,3\n"), 100)
	var buf bytes.Buffer
	w := NewWriter("out.csv.lz4", &buf)
	_, err := w.Write(data)
	require.Nil(t, err)
	require.Nil(t, w.Close())
	require.NotEqual(t, data, buf.Bytes())
	require.Less(t, buf.Len(), len(data))

	out, err := io.ReadAll(NewReader("out.csv.lz4", &buf))
	require.Nil(t, err)
	require.Equal(t, data, out)
}

func TestUncompressedPassthrough(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter("out.csv", &buf)
	_, err := w.Write([]byte("hello"))
	require.Nil(t, err)
	require.Nil(t, w.Close())
	require.Equal(t, "hello", buf.String())

	r := bytes.NewReader([]byte("x"))
	require.Equal(t, io.Reader(r), NewReader("in.csv", r))
}

func TestSuffixes(t *testing.T) {
	require.True(t, IsLZ4("a/b.JSONL.LZ4"))
	require.False(t, IsLZ4("a/b.jsonl"))
	require.Equal(t, "a/b.csv", TrimSuffix("a/b.csv.lz4"))
	require.Equal(t, "a/b.csv", TrimSuffix("a/b.csv"))
}
