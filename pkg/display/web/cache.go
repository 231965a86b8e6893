package web

type cacheEntry struct {
	hash  uint64
	valid bool
	data  []byte
}

// cache is a ring of the last frames sent, mirrored by every client.
type cache struct {
	cache   []*cacheEntry
	idx     int
	enabled bool
	size    int
}

func newCache(size int) *cache {
	c := &cache{
		cache:   make([]*cacheEntry, size),
		size:    size,
		enabled: size > 0,
	}
	for i := 0; i < size; i++ {
		c.cache[i] = &cacheEntry{}
	}

	return c
}

// index returns the slot holding hash, or -1.
func (c *cache) index(hash uint64) int {
	if !c.enabled {
		return -1
	}
	for i, e := range c.cache {
		if e.valid && e.hash == hash {
			return i
		}
	}

	return -1
}

// add stores output in the next slot, returning the slot used.
func (c *cache) add(hash uint64, output []byte) int {
	if !c.enabled {
		return 0
	}
	slot := c.idx
	c.cache[slot].data = output
	c.cache[slot].hash = hash
	c.cache[slot].valid = true

	c.idx = (c.idx + 1) % c.size
	return slot
}
