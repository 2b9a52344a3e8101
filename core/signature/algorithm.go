package signature

import "crypto"

// family identifies the verification strategy a SignatureTemplate uses.
type family int

const (
	familyRSAPKCS1v15 family = iota
	familyRSAPSS
	familyECDSA
)

// Template is the cached, alg-specific verification recipe: the
// underlying hash, the family-specific strategy, and for ECDSA, the
// expected raw-signature length used to detect P-1363 vs DER encoding.
type Template struct {
	Alg            string
	Family         family
	Hash           crypto.Hash
	CurveByteSize  int // ECDSA only: byte length of r and s
	rsaPSSSaltSize int // 0 means "equal to hash size", the RFC 7518 default
}

var templates = map[string]Template{
	"RS256": {Alg: "RS256", Family: familyRSAPKCS1v15, Hash: crypto.SHA256},
	"RS384": {Alg: "RS384", Family: familyRSAPKCS1v15, Hash: crypto.SHA384},
	"RS512": {Alg: "RS512", Family: familyRSAPKCS1v15, Hash: crypto.SHA512},

	"PS256": {Alg: "PS256", Family: familyRSAPSS, Hash: crypto.SHA256},
	"PS384": {Alg: "PS384", Family: familyRSAPSS, Hash: crypto.SHA384},
	"PS512": {Alg: "PS512", Family: familyRSAPSS, Hash: crypto.SHA512},

	"ES256": {Alg: "ES256", Family: familyECDSA, Hash: crypto.SHA256, CurveByteSize: 32},
	"ES384": {Alg: "ES384", Family: familyECDSA, Hash: crypto.SHA384, CurveByteSize: 48},
	"ES512": {Alg: "ES512", Family: familyECDSA, Hash: crypto.SHA512, CurveByteSize: 66},
}

// rejectedAlgs are never permitted regardless of issuer configuration.
var rejectedAlgs = map[string]bool{
	"none":   true,
	"HS256":  true,
	"HS384":  true,
	"HS512":  true,
}

// DefaultAlgorithmPreferences is the default algorithm_preferences list
// per spec.md §3 when an issuer does not configure its own.
var DefaultAlgorithmPreferences = []string{
	"RS256", "RS384", "RS512",
	"ES256", "ES384", "ES512",
	"PS256", "PS384", "PS512",
}
