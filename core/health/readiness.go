package health

import (
	"context"
	"fmt"

	"github.com/openjwt/jwtvalidator/core/jwks"
)

// Check is a single readiness probe: nil on success, a descriptive error
// on failure.
type Check func(ctx context.Context) error

// Status is the outcome of running a set of Checks.
type Status struct {
	Ready    bool
	Failures map[string]string // check name -> error message, only set entries failed
}

// CheckAll runs every named check and aggregates the result. A nil or
// empty checks map is always Ready.
func CheckAll(ctx context.Context, checks map[string]Check) Status {
	failures := map[string]string{}
	for name, check := range checks {
		if err := check(ctx); err != nil {
			failures[name] = err.Error()
		}
	}
	return Status{Ready: len(failures) == 0, Failures: failures}
}

// JWKSReady reports a loader as not-ready when it has no algorithm
// hints at all. That is the case when its current snapshot is empty —
// the degraded state an HTTPLoader starts in when its first synchronous
// load failed with nothing to fall back on (spec.md §4.6) — and also when
// none of its keys carries a JWK "alg" field, since hints come only from
// that field. A loader that has ever successfully loaded keys with an
// "alg" stays ready even through a later transient fetch failure, since
// it keeps serving the last good snapshot.
func JWKSReady(name string, loader jwks.Loader) Check {
	return func(ctx context.Context) error {
		if len(loader.AlgorithmPreferencesHint()) == 0 {
			return fmt.Errorf("jwks loader %q has no key material loaded", name)
		}
		return nil
	}
}
