package jwks

// Loader is the common contract every JWKS source satisfies: look up the
// key candidates for a kid, and hint which algorithms its keys support
// (used by IssuerConfig construction to narrow SignatureEngine's template
// cache).
type Loader interface {
	// GetKey returns the exact kid match if keyID is non-empty and known,
	// or — when keyID is empty or unknown — every key that came without a
	// kid, in document order (spec.md §3's bounded fallback). ok is false
	// only when there is nothing to try at all.
	GetKey(keyID string) (candidates []KeyInfo, ok bool)
	AlgorithmPreferencesHint() []string
}

// candidatesFor returns the keys a SignatureEngine should try for a token
// that carries keyID: the exact kid match if present, otherwise every
// key that came without a kid, in document order, bounded by len.
func candidatesFor(snap Snapshot, keyID string) []KeyInfo {
	if keyID != "" {
		if k, ok := snap.ByKeyID[keyID]; ok {
			return []KeyInfo{k}
		}
	}
	return snap.KeysWithoutID
}

func algHintFrom(snap Snapshot) []string {
	seen := map[string]bool{}
	var hints []string
	add := func(alg string) {
		if alg != "" && !seen[alg] {
			seen[alg] = true
			hints = append(hints, alg)
		}
	}
	for _, k := range snap.ByKeyID {
		add(k.Algorithm)
	}
	for _, k := range snap.KeysWithoutID {
		add(k.Algorithm)
	}
	return hints
}
