package signature

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"
)

// Sentinel errors classify a Verify failure for the caller (typically the
// validation pipeline, which maps these to security events).
var (
	ErrAlgorithmNoneRejected = errors.New("signature: alg \"none\" is rejected unconditionally")
	ErrAlgorithmNotAllowed   = errors.New("signature: algorithm not permitted for this issuer")
	ErrSignatureInvalid      = errors.New("signature: verification failed")
)

// Engine verifies JWS signatures for one issuer's algorithm preferences.
// Its template cache is built once at construction from those
// preferences and never mutated afterward, so Verify never takes a lock
// on the hot path.
type Engine struct {
	allowed   map[string]bool
	templates map[string]Template
}

// NewEngine builds an Engine whose allowed set is exactly algPreferences,
// minus any algorithm this package has no Template for. Algorithms in
// rejectedAlgs are never included even if present in algPreferences.
func NewEngine(algPreferences []string) *Engine {
	e := &Engine{
		allowed:   make(map[string]bool, len(algPreferences)),
		templates: make(map[string]Template, len(algPreferences)),
	}
	for _, alg := range algPreferences {
		if rejectedAlgs[alg] {
			continue
		}
		tmpl, ok := templates[alg]
		if !ok {
			continue
		}
		e.allowed[alg] = true
		e.templates[alg] = tmpl
	}
	return e
}

// Verify checks that signatureBytes is a valid signature over signingInput
// under alg, using key as the public material. ECDSA signatures in raw
// IEEE P-1363 form are normalized to DER before verification.
func (e *Engine) Verify(alg string, signingInput, signatureBytes []byte, key crypto.PublicKey) error {
	if alg == "none" {
		return ErrAlgorithmNoneRejected
	}
	if rejectedAlgs[alg] {
		return ErrAlgorithmNotAllowed
	}
	if !e.allowed[alg] {
		return ErrAlgorithmNotAllowed
	}
	tmpl := e.templates[alg]

	h := tmpl.Hash.New()
	h.Write(signingInput)
	digest := h.Sum(nil)

	switch tmpl.Family {
	case familyRSAPKCS1v15:
		pub, ok := key.(*rsa.PublicKey)
		if !ok {
			return fmt.Errorf("%w: key is not an RSA public key", ErrSignatureInvalid)
		}
		if err := rsa.VerifyPKCS1v15(pub, tmpl.Hash, digest, signatureBytes); err != nil {
			return ErrSignatureInvalid
		}
		return nil

	case familyRSAPSS:
		pub, ok := key.(*rsa.PublicKey)
		if !ok {
			return fmt.Errorf("%w: key is not an RSA public key", ErrSignatureInvalid)
		}
		opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: tmpl.Hash}
		if err := rsa.VerifyPSS(pub, tmpl.Hash, digest, signatureBytes, opts); err != nil {
			return ErrSignatureInvalid
		}
		return nil

	case familyECDSA:
		pub, ok := key.(*ecdsa.PublicKey)
		if !ok {
			return fmt.Errorf("%w: key is not an ECDSA public key", ErrSignatureInvalid)
		}
		der, err := normalizeECDSASignature(signatureBytes, tmpl.CurveByteSize)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrSignatureInvalid, err)
		}
		if !ecdsa.VerifyASN1(pub, digest, der) {
			return ErrSignatureInvalid
		}
		return nil

	default:
		return fmt.Errorf("%w: no verification strategy for %s", ErrAlgorithmNotAllowed, alg)
	}
}
