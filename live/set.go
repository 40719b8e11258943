// ABOUTME: Opt-in registry of tracked live objects and functions
// ABOUTME: Provides the snapshot-at-call-time listing the collector walks

// Package live holds the tracked live-object set. Go exposes no supported
// way to enumerate arbitrary heap objects with their field layouts, so the
// host opts its long-lived structures in by tracking them here. The
// listing handed to a collection pass is a copy taken under the lock; the
// set may keep mutating while the pass runs.
package live

import (
	"reflect"
	"sync"

	"github.com/prateek/heapscope/inspect"
)

// Set is a thread-safe collection of tracked objects and functions.
type Set struct {
	mu        sync.RWMutex
	keyed     map[uintptr]any // pointer-like objects, deduplicated by identity
	keyOrder  []uintptr       // insertion order of keyed objects
	bare      []any           // objects with no native identity
	funcs     map[uintptr]struct{}
	funcOrder []uintptr
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{
		keyed: make(map[uintptr]any),
		funcs: make(map[uintptr]struct{}),
	}
}

// defaultSet backs the package-level convenience functions
var defaultSet = NewSet()

// Default returns the process-wide set used by Track and TrackFunc.
func Default() *Set { return defaultSet }

// Track registers obj for inclusion in future collection passes. Tracking
// the same pointer twice is a no-op. Values without a native identity
// (plain structs, numbers) are kept too, but each call adds a fresh entry
// and such entries cannot be untracked.
func Track(obj any) { defaultSet.Track(obj) }

// TrackFunc registers a function for the code-artifact inventory.
func TrackFunc(fn any) { defaultSet.TrackFunc(fn) }

// Track registers obj in this set.
func (s *Set) Track(obj any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key, ok := inspect.IdentityOf(obj); ok {
		if _, seen := s.keyed[key]; !seen {
			s.keyed[key] = obj
			s.keyOrder = append(s.keyOrder, key)
		}
		return
	}
	s.bare = append(s.bare, obj)
}

// Untrack removes a previously tracked pointer-like object.
func (s *Set) Untrack(obj any) {
	key, ok := inspect.IdentityOf(obj)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.keyed[key]; !seen {
		return
	}
	delete(s.keyed, key)
	for i, k := range s.keyOrder {
		if k == key {
			s.keyOrder = append(s.keyOrder[:i], s.keyOrder[i+1:]...)
			break
		}
	}
}

// TrackFunc registers a function value for the code-artifact inventory.
// Non-function values are ignored.
func (s *Set) TrackFunc(fn any) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return
	}
	pc := rv.Pointer()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.funcs[pc]; seen {
		return
	}
	s.funcs[pc] = struct{}{}
	s.funcOrder = append(s.funcOrder, pc)
}

// Objects returns a copy of the current listing in tracking order. This is
// the point-in-time boundary: objects tracked or untracked after the call
// are not reflected in the returned slice.
func (s *Set) Objects() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]any, 0, len(s.keyOrder)+len(s.bare))
	for _, key := range s.keyOrder {
		out = append(out, s.keyed[key])
	}
	out = append(out, s.bare...)
	return out
}

// FuncPCs returns a copy of the tracked function entry points in tracking
// order.
func (s *Set) FuncPCs() []uintptr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]uintptr, len(s.funcOrder))
	copy(out, s.funcOrder)
	return out
}

// Len returns the number of tracked objects.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keyOrder) + len(s.bare)
}
