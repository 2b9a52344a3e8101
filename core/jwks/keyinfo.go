package jwks

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/json"
	"fmt"

	jose "github.com/go-jose/go-jose/v4"
)

// KeyType mirrors the JWK "kty" values this library understands.
type KeyType string

const (
	KeyTypeRSA KeyType = "RSA"
	KeyTypeEC  KeyType = "EC"
	KeyTypeOKP KeyType = "OKP"
)

// KeyInfo is the parsed, algorithm-agnostic form of one JWK entry. Its
// PublicKey is owned by the Loader snapshot it came from and must not be
// used past the next snapshot swap.
type KeyInfo struct {
	KeyID     string
	KeyType   KeyType
	Algorithm string // JWK "alg" hint, may be empty
	PublicKey crypto.PublicKey
}

// Snapshot is an immutable, kid-indexed view of a JWKS document at one
// point in time. KeysWithoutID holds entries that had no "kid" field, so
// callers can try them in document order per spec.md §3's bounded
// fallback.
type Snapshot struct {
	ByKeyID       map[string]KeyInfo
	KeysWithoutID []KeyInfo
}

func emptySnapshot() Snapshot {
	return Snapshot{ByKeyID: map[string]KeyInfo{}}
}

// ParseSnapshot parses a raw JWKS document body into a Snapshot. Key
// entries with an unsupported "kty" are silently dropped (the caller is
// expected to emit a JWKSJSONParseFailed-adjacent warning event for the
// document as a whole only if parsing fails outright; per-key skips are
// not individually fatal).
func ParseSnapshot(body []byte) (Snapshot, error) {
	var raw struct {
		Keys []json.RawMessage `json:"keys"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("jwks: decode document: %w", err)
	}

	snap := emptySnapshot()
	for _, keyRaw := range raw.Keys {
		var jwk jose.JSONWebKey
		if err := jwk.UnmarshalJSON(keyRaw); err != nil {
			continue // unsupported or malformed kty: dropped, not fatal
		}

		kt, ok := concreteKeyType(jwk.Key)
		if !ok {
			continue
		}

		info := KeyInfo{
			KeyID:     jwk.KeyID,
			KeyType:   kt,
			Algorithm: jwk.Algorithm,
			PublicKey: jwk.Key,
		}
		if info.KeyID == "" {
			snap.KeysWithoutID = append(snap.KeysWithoutID, info)
			continue
		}
		snap.ByKeyID[info.KeyID] = info
	}
	return snap, nil
}

func concreteKeyType(key interface{}) (KeyType, bool) {
	switch key.(type) {
	case *rsa.PublicKey:
		return KeyTypeRSA, true
	case *ecdsa.PublicKey:
		return KeyTypeEC, true
	case ed25519.PublicKey:
		return KeyTypeOKP, true
	default:
		return "", false
	}
}
