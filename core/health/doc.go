// Package health provides a framework-agnostic readiness surface: a
// Check is a plain func(context.Context) error, and CheckAll runs a named
// set of them and reports which failed. There are no HTTP handlers here
// — wiring a Check into an HTTP health endpoint, a k8s probe, or a CLI
// command is left to the caller, since this library has no transport
// layer of its own.
//
// The primary use is reporting whether a core/jwks Loader currently has
// usable key material, via JWKSReady.
//
// Usage:
//
//	status := health.CheckAll(ctx, map[string]health.Check{
//		"jwks:auth0":  health.JWKSReady("auth0", auth0Loader),
//		"jwks:okta":   health.JWKSReady("okta", oktaLoader),
//	})
//	if !status.Ready {
//		// status.Failures maps check name -> error message
//	}
package health
