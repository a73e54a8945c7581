package web

import "github.com/cespare/xxhash"

type cacheEntry struct {
	hash uint64
	used bool
}

// cache remembers the hashes of the last frames sent, so that
// a repeated frame can be sent as its slot index alone. Clients
// keep the same slots, filled in the same order.
type cache struct {
	entries []cacheEntry
	idx     int
	enabled bool
}

func newCache(size int) *cache {
	return &cache{
		entries: make([]cacheEntry, size),
		enabled: true,
	}
}

// lookup returns the slot of data, and whether it was already
// cached. On a miss data is stored in the next slot, evicting
// the oldest entry.
func (c *cache) lookup(data []byte) (int, bool) {
	hash := xxhash.Sum64(data)
	if c.enabled {
		if i := c.index(hash); i != -1 {
			return i, true
		}
	}

	slot := c.idx
	c.entries[slot] = cacheEntry{hash: hash, used: true}
	c.idx = (c.idx + 1) % len(c.entries)
	return slot, false
}

func (c *cache) index(hash uint64) int {
	for i, e := range c.entries {
		if e.used && e.hash == hash {
			return i
		}
	}

	return -1
}

// reset empties the cache, for when clients must resynchronise.
func (c *cache) reset() {
	for i := range c.entries {
		c.entries[i] = cacheEntry{}
	}
	c.idx = 0
}
