package vm

// cacheLine holds one fully-associative cache slot.
type cacheLine struct {
	valid bool
	addr  uint16
	data  uint16
}

// Cache is a 16-line, fully-associative, write-through, write-allocate
// cache (spec.md §4.F "Cache"). It holds no reference back to the
// Memory it fronts — Machine mediates between the two — so the
// cache/memory relationship never becomes a cyclic pointer pair
// (spec.md §9 "Cyclic/shared ownership").
//
// Replacement is FIFO: lines fill in arrival order and the oldest line
// is evicted first, tracked by next without any per-line recency state.
type Cache struct {
	lines [CacheLines]cacheLine
	next  int

	Hits   uint64
	Misses uint64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Reset invalidates every line and zeroes the hit/miss counters.
func (c *Cache) Reset() {
	*c = Cache{}
}

// lookup returns the slot index holding addr, or -1 if addr misses.
func (c *Cache) lookup(addr uint16) int {
	for i := range c.lines {
		if c.lines[i].valid && c.lines[i].addr == addr {
			return i
		}
	}
	return -1
}

// Read returns (value, true) on a cache hit, or (0, false) on a miss.
// It does not itself go to memory; the caller (Machine.CachedRead)
// handles the miss.
func (c *Cache) Read(addr uint16) (uint16, bool) {
	if i := c.lookup(addr); i >= 0 {
		c.Hits++
		return c.lines[i].data, true
	}
	c.Misses++
	return 0, false
}

// Fill installs (addr, value) into the cache, evicting the oldest line
// if every slot is occupied (write-allocate on a read miss, or the
// allocate half of a write-allocate write).
func (c *Cache) Fill(addr, value uint16) {
	if i := c.lookup(addr); i >= 0 {
		c.lines[i].data = value
		return
	}
	c.lines[c.next] = cacheLine{valid: true, addr: addr, data: value}
	c.next = (c.next + 1) % CacheLines
}

// WriteThrough updates addr's line if present, without allocating a new
// one, and reports whether it was present. Machine.CachedWrite does not
// use it: that path calls Fill, which allocates on a miss
// (write-allocate).
func (c *Cache) WriteThrough(addr, value uint16) (hit bool) {
	if i := c.lookup(addr); i >= 0 {
		c.lines[i].data = value
		return true
	}
	return false
}
