// Package inflight tracks pending operations so overlapping submissions can be rejected.
package inflight

import (
	"strings"
	"sync"
)

// Guard is a set of keys with an operation in progress. The zero value is not usable; use New.
type Guard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

// New creates an empty guard.
func New() *Guard {
	return &Guard{busy: make(map[string]struct{})}
}

// Key joins parts into a guard key.
func Key(parts ...string) string {
	return strings.Join(parts, "\x00")
}

// TryAcquire marks key as busy. It returns false if key is already busy.
// The returned release func may be called more than once.
func (g *Guard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.busy[key]; busy {
		return func() {}, false
	}
	g.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, true
}

// Busy reports whether key has an operation in progress.
func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.busy[key]
	return busy
}
