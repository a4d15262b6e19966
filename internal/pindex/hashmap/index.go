package hashmap

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// entry chains together keys whose hashes collide
type entry struct {
	key    []byte
	values []int
}

// Index is a hash index from encoded keys to the positions of the Rows which
// share them. Keys are hashed with xxhash, and collisions are resolved by
// comparing the full key.
type Index struct {
	buckets map[uint64][]*entry
	numKeys int
}

// CreateIndex is a factory for Indexes
func CreateIndex() *Index {
	return &Index{buckets: make(map[uint64][]*entry)}
}

func (idx *Index) find(hash uint64, key []byte) *entry {
	for _, e := range idx.buckets[hash] {
		if bytes.Equal(e.key, key) {
			return e
		}
	}
	return nil
}

// Get returns the values recorded for a key, in insertion order
func (idx *Index) Get(key []byte) ([]int, bool) {
	e := idx.find(xxhash.Sum64(key), key)
	if e == nil {
		return nil, false
	}
	return e.values, true
}

// Append records a value for a key
func (idx *Index) Append(key []byte, value int) {
	hash := xxhash.Sum64(key)
	e := idx.find(hash, key)
	if e == nil {
		e = &entry{key: append([]byte(nil), key...)}
		idx.buckets[hash] = append(idx.buckets[hash], e)
		idx.numKeys++
	}
	e.values = append(e.values, value)
}

// GetOrAssign returns the first value recorded for a key, recording next if the key is new
func (idx *Index) GetOrAssign(key []byte, next int) (value int, isNew bool) {
	if values, ok := idx.Get(key); ok {
		return values[0], false
	}
	idx.Append(key, next)
	return next, true
}

// NumKeys returns the number of distinct keys in this Index
func (idx *Index) NumKeys() int {
	return idx.numKeys
}
