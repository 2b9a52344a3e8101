// Package retry implements exponential-backoff-with-jitter retry over a
// fallible operation, returning a Result value that is never an error in
// the Go sense — every outcome, including exhaustion, is represented as
// data so callers (and ETagAwareFetcher) never need a recover path.
//
// Backoff mechanics are delegated to github.com/sethvargo/go-retry; this
// package adds the HttpResult-shaped outcome, attempt counting, and the
// RECOVERED-state promotion spec.md §4.4 requires (an operation that
// fails on attempt 1..N-1 and succeeds on attempt N is reported as
// Recovered, not Fresh, so callers can distinguish a clean first try from
// a flaky one).
package retry
