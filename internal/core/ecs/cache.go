package ecs

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// queryCache memoizes query results by requested type set. It is cleared
// wholesale on any structural change; entries keep the exact id list so two
// type sets hashing to the same fingerprint never share a result.
type queryCache struct {
	entries map[uint64][]cacheEntry
	size    int
}

type cacheEntry struct {
	key []uint32
	ids []EntityID
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[uint64][]cacheEntry, 32)}
}

// fingerprint hashes a sorted, de-duplicated type id list.
func fingerprint(key []uint32) uint64 {
	d := xxhash.New()
	var buf [4]byte
	for _, k := range key {
		binary.LittleEndian.PutUint32(buf[:], k)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func (c *queryCache) get(key []uint32) ([]EntityID, bool) {
	for _, e := range c.entries[fingerprint(key)] {
		if slices.Equal(e.key, key) {
			return e.ids, true
		}
	}
	return nil, false
}

func (c *queryCache) put(key []uint32, ids []EntityID) {
	h := fingerprint(key)
	c.entries[h] = append(c.entries[h], cacheEntry{key: key, ids: ids})
	c.size++
}

func (c *queryCache) invalidate() {
	if c.size == 0 {
		return
	}
	clear(c.entries)
	c.size = 0
}

func (c *queryCache) len() int { return c.size }
