package health

// Liveness reports whether the process itself is up, with no dependency
// checks — always true. Kept distinct from readiness because a process
// that is alive but degraded (e.g. every JWKS loader stale) should still
// answer liveness probes so an orchestrator doesn't restart it needlessly
// while background refresh is busy healing.
func Liveness() bool { return true }
