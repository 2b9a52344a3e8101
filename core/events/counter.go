package events

import "sync/atomic"

// Counter is a lock-free, per-EventType monotonic counter. The zero value
// is ready to use.
type Counter struct {
	counts [typeCount]atomic.Int64
}

// Increment adds one to the count for t. Wait-free; safe for concurrent use
// from any number of goroutines.
func (c *Counter) Increment(t Type) {
	if t < 0 || int(t) >= len(c.counts) {
		return
	}
	c.counts[t].Add(1)
}

// Count returns the current count for t. There is no ordering guarantee
// relative to concurrent Increment calls for other event types.
func (c *Counter) Count(t Type) int64 {
	if t < 0 || int(t) >= len(c.counts) {
		return 0
	}
	return c.counts[t].Load()
}

// Snapshot returns a point-in-time copy of every counter, keyed by Type.
// Reading each entry is linearizable with respect to Increment on that same
// entry; the snapshot as a whole is not a single atomic transaction.
func (c *Counter) Snapshot() map[Type]int64 {
	out := make(map[Type]int64, typeCount)
	for t := Type(0); t < typeCount; t++ {
		if n := c.counts[t].Load(); n != 0 {
			out[t] = n
		}
	}
	return out
}

// reset zeroes every counter. It is unexported and used only by this
// package's internal tests, since production counters are intentionally
// monotonic.
func (c *Counter) reset() {
	for t := Type(0); t < typeCount; t++ {
		c.counts[t].Store(0)
	}
}
