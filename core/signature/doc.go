// Package signature implements JWS signature verification: mapping a
// token's "alg" header to a cached SignatureTemplate and verifying
// signing_input against signature_bytes using a KeyInfo's public
// material.
//
// Algorithms "none" and any HS* (symmetric) identifier are rejected
// unconditionally, regardless of an issuer's configured preferences.
// ECDSA signatures are normalized from IEEE P-1363 raw r||s form to ASN.1
// DER before verification when the engine detects the raw form (spec.md
// §4.7's ECDSA format normalization).
//
// No verification state is shared across calls — only the per-alg
// Template (hash, family, ECDSA curve size) is cached, so Verify is safe
// for concurrent use and never serializes on a global lookup.
package signature
