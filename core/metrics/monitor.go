package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stage identifies a validation-pipeline stage whose duration can be
// recorded by a Monitor.
type Stage string

// Monitor is an optional wrapper exposing per-stage timing via RingBuffer.
// Recording is zero-cost for stages that were never enabled: no
// RingBuffer is allocated until the first Record call for that stage.
type Monitor struct {
	enabled map[Stage]bool

	mu     sync.RWMutex
	rings  map[Stage]*RingBuffer
	hinter atomic.Uint64
}

// NewMonitor creates a Monitor that only records the given stages. Calling
// Record for a stage not in this set is a no-op.
func NewMonitor(stages ...Stage) *Monitor {
	enabled := make(map[Stage]bool, len(stages))
	for _, s := range stages {
		enabled[s] = true
	}
	return &Monitor{
		enabled: enabled,
		rings:   make(map[Stage]*RingBuffer),
	}
}

// Enabled reports whether stage recording is active, so callers can skip
// timing work entirely (e.g. time.Now()) on the hot path when disabled.
func (m *Monitor) Enabled(stage Stage) bool {
	return m != nil && m.enabled[stage]
}

// Record stores a stage duration as microseconds. No-op if the stage is
// not enabled or m is nil.
func (m *Monitor) Record(stage Stage, d time.Duration) {
	if !m.Enabled(stage) {
		return
	}

	ring := m.ringFor(stage)
	hint := m.hinter.Add(1)
	ring.Record(hint, uint64(d.Microseconds()))
}

// Statistics returns the current percentile statistics for stage, or the
// zero Stats if nothing has been recorded for it yet.
func (m *Monitor) Statistics(stage Stage) Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.RLock()
	ring := m.rings[stage]
	m.mu.RUnlock()
	if ring == nil {
		return Stats{}
	}
	return ring.Statistics()
}

func (m *Monitor) ringFor(stage Stage) *RingBuffer {
	m.mu.RLock()
	ring := m.rings[stage]
	m.mu.RUnlock()
	if ring != nil {
		return ring
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ring := m.rings[stage]; ring != nil {
		return ring
	}
	ring = NewRingBuffer(0, 0)
	m.rings[stage] = ring
	return ring
}
