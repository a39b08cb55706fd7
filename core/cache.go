package core

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/sirupsen/logrus"
)

// WeightedLRUCache is a key->value store bounded by total weight rather
// than by entry count. It is the read tier of TrackingCopyCache.
//
// Recency tracking is delegated to hashicorp/golang-lru's simplelru.LRU,
// constructed with an effectively unbounded item count — eviction here is
// driven entirely by the pluggable Meter, not by simplelru's own capacity,
// since simplelru has no notion of per-entry weight on its own.
//
// A TrackingCopy and everything it owns is single-owner, single-threaded:
// no mutex guards currentWeight or the underlying LRU.
type WeightedLRUCache struct {
	maxWeight     int
	currentWeight int
	meter         Meter
	lru           *lru.LRU[Key, Value]
}

// NewWeightedLRUCache creates a cache that evicts least-recently-used
// entries once currentWeight, as measured by meter, exceeds maxWeight.
func NewWeightedLRUCache(maxWeight int, meter Meter) *WeightedLRUCache {
	l, err := lru.NewLRU[Key, Value](math.MaxInt32, nil)
	if err != nil {
		// math.MaxInt32 is always a valid positive capacity.
		panic(err)
	}
	return &WeightedLRUCache{maxWeight: maxWeight, meter: meter, lru: l}
}

// Insert places k/v at the most-recent position and evicts
// least-recently-used entries until currentWeight <= maxWeight or the
// cache is empty. An entry whose own weight is within maxWeight survives
// its own insertion and is only evicted if a later insert pushes it out;
// an entry that alone weighs more than maxWeight is evicted by its own
// insertion, along with every other entry.
func (c *WeightedLRUCache) Insert(k Key, v Value) {
	if old, ok := c.lru.Peek(k); ok {
		c.currentWeight -= c.meter.Measure(k, old)
	}
	c.lru.Add(k, v)
	c.currentWeight += c.meter.Measure(k, v)

	for c.currentWeight > c.maxWeight {
		ek, ev, ok := c.lru.RemoveOldest()
		if !ok {
			break
		}
		c.currentWeight -= c.meter.Measure(ek, ev)
		logrus.Debugf("trackingcopy: evicted %s from read cache (weight now %d/%d)", ek, c.currentWeight, c.maxWeight)
	}
}

// Get returns the value for k, refreshing it to the most-recent position.
func (c *WeightedLRUCache) Get(k Key) (Value, bool) {
	return c.lru.Get(k)
}

// IsEmpty reports whether the cache holds no entries.
func (c *WeightedLRUCache) IsEmpty() bool { return c.lru.Len() == 0 }
