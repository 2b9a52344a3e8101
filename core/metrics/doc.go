// Package metrics provides a lock-free, striped sliding-window percentile
// monitor (RingBuffer) and an optional per-stage wrapper (Monitor) for
// timing validation-pipeline stages.
//
// RingBuffer shards writes across N stripes (default: GOMAXPROCS) to avoid
// a single contended cursor; Statistics sorts a snapshot copy of every
// stripe's valid samples to compute p50/p95/p99. Record is wait-free on
// the fast path; Statistics is O(n log n) in the current sample count and
// is meant to be called out of the hot path (e.g. periodic export).
package metrics
