// Package jwks parses JSON Web Key Set documents and exposes them as a
// Loader: a source of keyed signing material that a validation pipeline
// queries by kid. Four variants are provided: an in-memory fixed set, a
// file snapshot, an HTTP-polled set with ETag caching and background
// refresh, and a well-known/OIDC-discovery-derived HTTP loader (see
// core/wellknown).
//
// Key parsing delegates to github.com/go-jose/go-jose/v4, which already
// knows every RFC 7517 key shape (RSA, EC, OKP); this package only adds
// the kid-indexed Loader contract and the atomic-snapshot-swap
// concurrency model described for the HTTP variant.
package jwks
