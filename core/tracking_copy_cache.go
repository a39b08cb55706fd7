package core

// TrackingCopyCache separates cached reads (evictable) from staged
// mutations (never evictable). Writes must stay cheap to re-read during
// the same deploy and must never be lost to eviction; reads are hot-path
// and unbounded without the cap.
type TrackingCopyCache struct {
	reads  *WeightedLRUCache
	writes map[Key]Value
}

// NewTrackingCopyCache creates a façade whose read tier is bounded by
// maxCacheSize as measured by meter, and whose write tier is unbounded.
func NewTrackingCopyCache(maxCacheSize int, meter Meter) *TrackingCopyCache {
	return &TrackingCopyCache{
		reads:  NewWeightedLRUCache(maxCacheSize, meter),
		writes: make(map[Key]Value),
	}
}

// Get checks the mutation tier first, falling back to the read tier (with
// LRU refresh) on miss.
func (c *TrackingCopyCache) Get(k Key) (Value, bool) {
	if v, ok := c.writes[k]; ok {
		return v, true
	}
	return c.reads.Get(k)
}

// InsertWrite stores k/v into the mutation tier only — it is never subject
// to read-cache eviction.
func (c *TrackingCopyCache) InsertWrite(k Key, v Value) {
	c.writes[k] = v
}

// InsertRead stores k/v into the read tier only.
func (c *TrackingCopyCache) InsertRead(k Key, v Value) {
	c.reads.Insert(k, v)
}

// IsEmpty reports whether both tiers hold no entries.
func (c *TrackingCopyCache) IsEmpty() bool {
	return len(c.writes) == 0 && c.reads.IsEmpty()
}
