package jwtvalidator

import (
	"context"
	"net/url"

	"github.com/openjwt/jwtvalidator/core/claims"
	"github.com/openjwt/jwtvalidator/core/jwks"
	"github.com/openjwt/jwtvalidator/core/pipeline"
	"github.com/openjwt/jwtvalidator/core/signature"
	"github.com/openjwt/jwtvalidator/core/wellknown"
)

// IssuerConfig is the resolved, immutable per-issuer policy a
// TokenValidator dispatches to once a token's "iss" claim is known.
type IssuerConfig = pipeline.Issuer

// DefaultAlgorithmPreferences is the permitted-algorithm set an issuer
// gets when WithAlgorithmPreferences is never called.
var DefaultAlgorithmPreferences = []string{
	"RS256", "RS384", "RS512",
	"ES256", "ES384", "ES512",
	"PS256", "PS384", "PS512",
}

type issuerBuilder struct {
	identifier           string
	wellKnownIssuer      string
	expectedAudience     []string
	expectedClientID     string
	algorithmPreferences []string
	claimMapperOverrides map[string]claims.Mapper
	loader               jwks.Loader
	loaderSources        int
	err                  error
}

// IssuerOption configures an IssuerConfig at construction via NewIssuer.
type IssuerOption func(*issuerBuilder)

// WithIssuerIdentifier sets the issuer_identifier expected in a token's
// "iss" claim. Not required when WithWellKnown discovers the issuer.
func WithIssuerIdentifier(id string) IssuerOption {
	return func(b *issuerBuilder) { b.identifier = id }
}

// WithExpectedAudience sets the audiences a token's "aud" must intersect.
// An issuer with no expected audience skips the check entirely.
func WithExpectedAudience(aud ...string) IssuerOption {
	return func(b *issuerBuilder) { b.expectedAudience = aud }
}

// WithExpectedClientID sets the client id a token's "azp" (preferred) or
// "client_id" must equal.
func WithExpectedClientID(id string) IssuerOption {
	return func(b *issuerBuilder) { b.expectedClientID = id }
}

// WithAlgorithmPreferences overrides DefaultAlgorithmPreferences. Must
// not include "none" or an HS* algorithm; violating that fails NewIssuer.
func WithAlgorithmPreferences(algs ...string) IssuerOption {
	return func(b *issuerBuilder) { b.algorithmPreferences = algs }
}

// WithClaimMapper registers a mapper overriding the built-in default (if
// any) for the given claim name.
func WithClaimMapper(claim string, mapper claims.Mapper) IssuerOption {
	return func(b *issuerBuilder) {
		if b.claimMapperOverrides == nil {
			b.claimMapperOverrides = make(map[string]claims.Mapper)
		}
		b.claimMapperOverrides[claim] = mapper
	}
}

// WithInMemoryJWKS sets the jwks loader to a fixed, in-process snapshot
// parsed from body (a JWKS document).
func WithInMemoryJWKS(body []byte) IssuerOption {
	return func(b *issuerBuilder) {
		b.loaderSources++
		loader, err := jwks.NewInMemoryLoader(body)
		if err != nil {
			b.err = err
			return
		}
		b.loader = loader
	}
}

// WithFileJWKS sets the jwks loader to a JWKS document read from path.
func WithFileJWKS(path string) IssuerOption {
	return func(b *issuerBuilder) {
		b.loaderSources++
		loader, err := jwks.NewFileLoader(path)
		if err != nil {
			b.err = err
			return
		}
		b.loader = loader
	}
}

// WithHTTPJWKS sets the jwks loader to an HTTPLoader polling url. The
// returned loader isn't started until NewValidator runs it.
func WithHTTPJWKS(url string, opts ...jwks.HTTPLoaderOption) IssuerOption {
	return func(b *issuerBuilder) {
		b.loaderSources++
		b.loader = jwks.NewHTTPLoader(url, opts...)
	}
}

// WithWellKnown discovers the issuer and jwks_uri from an OIDC discovery
// document at wellKnownURL, deriving an HTTPLoader for the discovered
// jwks_uri. Per spec.md §4.11, discovery blocks briefly here; if it's
// currently degraded, NewIssuer still succeeds with an empty, in-memory
// placeholder loader rather than failing construction — the resolver has
// no background retry of its own, so a genuinely down discovery endpoint
// stays degraded until the issuer is rebuilt (recorded in DESIGN.md). The
// issuer identifier defaults to wellKnownURL's origin, which is what a
// successful discovery is required to match anyway, so it stays stable
// across the degraded/healthy transition.
func WithWellKnown(ctx context.Context, wellKnownURL string, resolver *wellknown.Resolver) IssuerOption {
	return func(b *issuerBuilder) {
		b.loaderSources++
		if u, err := url.Parse(wellKnownURL); err == nil {
			b.wellKnownIssuer = u.Scheme + "://" + u.Host
		}

		result, err := resolver.Resolve(ctx, wellKnownURL)
		if err != nil {
			b.loader = jwks.NewInMemoryLoaderFromKeys(nil)
			return
		}
		b.loader = result.Loader
		b.wellKnownIssuer = result.Issuer
	}
}

// NewIssuer builds an IssuerConfig, validating at construction time per
// spec.md §4.9: an identifier must be resolvable, algorithm_preferences
// must be non-empty and free of none/HS*, and exactly one jwks loader
// source must be configured.
func NewIssuer(opts ...IssuerOption) (*IssuerConfig, error) {
	b := &issuerBuilder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.err != nil {
		return nil, b.err
	}

	identifier := b.identifier
	if identifier == "" {
		identifier = b.wellKnownIssuer
	}
	if identifier == "" {
		return nil, ErrIssuerIdentifierRequired
	}

	algPrefs := b.algorithmPreferences
	if len(algPrefs) == 0 {
		algPrefs = DefaultAlgorithmPreferences
	}
	for _, alg := range algPrefs {
		if alg == "none" || alg == "HS256" || alg == "HS384" || alg == "HS512" {
			return nil, ErrAlgorithmPreferenceRejected
		}
	}

	switch b.loaderSources {
	case 0:
		return nil, ErrJWKSLoaderRequired
	case 1:
		// exactly one, as required
	default:
		return nil, ErrJWKSLoaderAmbiguous
	}

	audience := make(map[string]struct{}, len(b.expectedAudience))
	for _, a := range b.expectedAudience {
		audience[a] = struct{}{}
	}

	return &IssuerConfig{
		Identifier:           identifier,
		ExpectedAudience:     audience,
		ExpectedClientID:     b.expectedClientID,
		AlgorithmPreferences: algPrefs,
		ClaimMappers:         claims.NewRegistry(b.claimMapperOverrides),
		JWKSLoader:           b.loader,
		SignatureEngine:      signature.NewEngine(algPrefs),
	}, nil
}
