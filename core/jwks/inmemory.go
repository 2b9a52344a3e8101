package jwks

// InMemoryLoader serves a fixed Snapshot for the process lifetime. Useful
// for tests and for issuers whose keys are provisioned out-of-band.
type InMemoryLoader struct {
	snap Snapshot
	hint []string
}

var _ Loader = (*InMemoryLoader)(nil)

// NewInMemoryLoader parses body once at construction and never refreshes.
func NewInMemoryLoader(body []byte) (*InMemoryLoader, error) {
	snap, err := ParseSnapshot(body)
	if err != nil {
		return nil, err
	}
	return &InMemoryLoader{snap: snap, hint: algHintFrom(snap)}, nil
}

// NewInMemoryLoaderFromKeys builds a loader directly from already-parsed
// keys, bypassing JSON entirely (used by tests and by callers assembling
// keys programmatically).
func NewInMemoryLoaderFromKeys(keys []KeyInfo) *InMemoryLoader {
	snap := emptySnapshot()
	for _, k := range keys {
		if k.KeyID == "" {
			snap.KeysWithoutID = append(snap.KeysWithoutID, k)
			continue
		}
		snap.ByKeyID[k.KeyID] = k
	}
	return &InMemoryLoader{snap: snap, hint: algHintFrom(snap)}
}

func (l *InMemoryLoader) GetKey(keyID string) ([]KeyInfo, bool) {
	c := candidatesFor(l.snap, keyID)
	return c, len(c) > 0
}

func (l *InMemoryLoader) AlgorithmPreferencesHint() []string { return l.hint }
