// Package jwtvalidator validates JWT bearer tokens against a configured
// set of issuers: it proves authenticity (signature over a JWKS- or
// OIDC-discovered key set), enforces semantic constraints (expiry,
// audience, client, mandatory claims, scopes/roles/groups), and returns
// typed, trustworthy token content. It is built for high-throughput
// authorization layers — API gateways, request-scoped bearer-token
// checks — and is transport-agnostic: nothing here parses HTTP requests
// or serves responses (see contrib/bearer for that boundary).
//
// # Quick start
//
//	issuer, err := jwtvalidator.NewIssuer(
//		jwtvalidator.WithIssuerIdentifier("https://idp.example/realms/test"),
//		jwtvalidator.WithExpectedAudience("api"),
//		jwtvalidator.WithExpectedClientID("api-client"),
//		jwtvalidator.WithHTTPJWKS("https://idp.example/realms/test/protocol/openid-connect/certs"),
//	)
//	if err != nil {
//		// configuration error; the validator never starts
//	}
//
//	validator := jwtvalidator.NewValidator(ctx, []*jwtvalidator.IssuerConfig{issuer})
//	defer validator.Close()
//
//	content, err := validator.CreateAccessToken(ctx, rawToken)
//	if err != nil {
//		var ve *jwtvalidator.ValidationError
//		if errors.As(err, &ve) {
//			// branch on ve.Category / ve.EventType
//		}
//		return
//	}
//	missing := content.MissingScopes([]string{"read", "write"})
//
// # Package layout
//
// The root package assembles and re-exports the core subsystems under
// core/: core/pipeline runs the fourteen-stage validation sequence,
// core/jwks and core/wellknown resolve signing keys (static, file,
// HTTP-polled, or OIDC-discovered), core/signature verifies RSA/ECDSA
// signatures, core/claims maps raw JSON claims into typed values, and
// core/events/core/metrics provide the observability surface
// (SecurityEventCounter, per-stage timing). core/config and core/health
// are optional glue for env-sourced configuration and readiness probes;
// neither is required to use a TokenValidator directly.
package jwtvalidator
