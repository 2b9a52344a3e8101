// Package bearer provides minimal, dependency-free helpers for pulling a
// raw JWT out of an incoming HTTP request. It does not parse or validate
// the token — pass the extracted string to a Validator. Kept deliberately
// thin: this library has no transport layer of its own, and wiring an
// Extractor into a specific router or middleware stack is left to the
// caller.
//
// Usage:
//
//	token := bearer.FromRequest(r)
//	if token == "" {
//		// no credential present
//	}
//
//	// Custom scheme, e.g. "DPoP <token>":
//	token := bearer.FromRequestWithScheme(r, "DPoP")
//
//	// Try several sources in order:
//	extract := bearer.FromMultiple(
//		bearer.FromRequest,
//		bearer.FromQuery("access_token"),
//	)
//	token := extract(r)
package bearer
