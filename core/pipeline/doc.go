// Package pipeline implements the fourteen-stage, fail-fast token
// validation pipeline: decode, structural checks, issuer resolution, key
// lookup, signature verification, temporal/audience/client checks,
// mandatory-claim checks, and finally claim-mapper application into a
// Content value.
//
// A stage failure stops the pipeline immediately, increments the
// matching events.Counter entry, and is reported as a *Failure — never a
// panic, never a generic error the caller has to pattern-match by
// string. A clean run increments events.ValidationSuccess.
package pipeline
