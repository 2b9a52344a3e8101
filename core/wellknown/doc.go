// Package wellknown resolves an OpenID Connect Discovery 1.0 document
// (served at <base>/.well-known/openid-configuration) into an issuer
// identifier and a derived core/jwks.HTTPLoader pointed at the
// discovered jwks_uri.
//
// Fetching reuses core/fetch's ETag-aware conditional GET and core/retry's
// backoff policy, exactly like core/jwks' own HTTP variant — the two are
// independent fetchers sharing configuration, not one aliased resource.
package wellknown
