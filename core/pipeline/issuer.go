package pipeline

import (
	"github.com/openjwt/jwtvalidator/core/claims"
	"github.com/openjwt/jwtvalidator/core/jwks"
	"github.com/openjwt/jwtvalidator/core/signature"
)

// Issuer is the resolved, immutable per-issuer policy a Pipeline
// dispatches to once a token's "iss" claim is known. Built once at
// startup and never mutated afterward.
type Issuer struct {
	Identifier          string
	ExpectedAudience    map[string]struct{} // empty = do not check
	ExpectedClientID    string              // empty = do not check
	AlgorithmPreferences []string
	ClaimMappers        *claims.Registry
	JWKSLoader          jwks.Loader
	SignatureEngine     *signature.Engine
}

func (i *Issuer) checkAudience(aud []string) bool {
	if len(i.ExpectedAudience) == 0 {
		return true
	}
	for _, a := range aud {
		if _, ok := i.ExpectedAudience[a]; ok {
			return true
		}
	}
	return false
}

func (i *Issuer) checkClientID(azp, clientID string) bool {
	if i.ExpectedClientID == "" {
		return true
	}
	if azp != "" {
		return azp == i.ExpectedClientID
	}
	return clientID == i.ExpectedClientID
}
