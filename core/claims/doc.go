// Package claims maps a raw JSON claim value to a typed ClaimValue via a
// pluggable per-claim-name strategy. A Registry carries the built-in
// mappers (identity-string, json-collection, string-splitter, instant,
// keycloak-roles, keycloak-groups); an issuer-configured mapper for a
// claim name overrides the default.
//
// Mapping is lazy: TypedTokenContent only invokes a mapper when an
// accessor for that claim is actually called.
package claims
