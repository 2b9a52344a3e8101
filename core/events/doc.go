// Package events defines the closed EventType taxonomy the validation
// pipeline reports through, and Counter, a lock-free per-type counter.
//
// Counter.Increment is wait-free and safe for concurrent use from many
// goroutines; readers calling Snapshot observe each type's count
// independently (no total order is established across types), matching
// spec.md's "eventual consistency across event types" contract.
package events
