package jwks

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// FileLoader serves a Snapshot read from a local JWKS document, re-reading
// it when the file's mtime advances. Every GetKey call stats the file; a
// reload after an mtime change runs under a single lock, and the published
// snapshot is an atomically-swapped pointer, so GetKey calls that see no
// change read the current snapshot without taking that lock.
type FileLoader struct {
	path string

	mu       sync.Mutex
	lastStat time.Time

	snap atomic.Pointer[loadedSnapshot]
}

type loadedSnapshot struct {
	Snapshot
	hint []string
}

var _ Loader = (*FileLoader)(nil)

// NewFileLoader reads path once synchronously before returning.
func NewFileLoader(path string) (*FileLoader, error) {
	l := &FileLoader{path: path}
	if err := l.reload(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *FileLoader) reload() error {
	info, err := os.Stat(l.path)
	if err != nil {
		return fmt.Errorf("jwks: stat %s: %w", l.path, err)
	}
	body, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("jwks: read %s: %w", l.path, err)
	}
	snap, err := ParseSnapshot(body)
	if err != nil {
		return fmt.Errorf("jwks: parse %s: %w", l.path, err)
	}
	l.snap.Store(&loadedSnapshot{Snapshot: snap, hint: algHintFrom(snap)})
	l.lastStat = info.ModTime()
	return nil
}

// refreshIfChanged re-reads the file when its mtime has advanced. Parse
// failures keep serving the previous snapshot, matching the Http loader's
// degrade-not-crash contract.
func (l *FileLoader) refreshIfChanged() {
	info, err := os.Stat(l.path)
	if err != nil {
		return
	}
	if !info.ModTime().After(l.lastStat) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !info.ModTime().After(l.lastStat) {
		return // another goroutine already reloaded
	}
	_ = l.reload()
}

func (l *FileLoader) GetKey(keyID string) ([]KeyInfo, bool) {
	l.refreshIfChanged()
	cur := l.snap.Load()
	c := candidatesFor(cur.Snapshot, keyID)
	return c, len(c) > 0
}

func (l *FileLoader) AlgorithmPreferencesHint() []string {
	return l.snap.Load().hint
}
