// ABOUTME: Per-pass identity registry mapping native identity to ObjID
// ABOUTME: Lazy assignment collapses repeated references and breaks cycles

package collector

import (
	"github.com/prateek/heapscope/inspect"
	"github.com/prateek/heapscope/snapshot"
)

// identityRegistry is private to one collection pass. It maps native
// object identities (reflect pointers) to snapshot-scoped ObjIDs, assigned
// lazily on first sight. Membership of the enumerated listing is frozen at
// construction: only members can become reference targets, which keeps
// every referenced identity resolvable within the same snapshot.
type identityRegistry struct {
	next snapshot.ObjID
	ids  map[uintptr]snapshot.ObjID
	live map[uintptr]struct{}
}

func newIdentityRegistry(listing []any) *identityRegistry {
	r := &identityRegistry{
		next: 1,
		ids:  make(map[uintptr]snapshot.ObjID),
		live: make(map[uintptr]struct{}, len(listing)),
	}
	for _, obj := range listing {
		if key, ok := inspect.IdentityOf(obj); ok {
			r.live[key] = struct{}{}
		}
	}
	return r
}

// assign resolves obj's ObjID, allocating one on first sight. Objects with
// no native identity get a fresh ID per call; they cannot alias anything.
func (r *identityRegistry) assign(obj any) snapshot.ObjID {
	key, ok := inspect.IdentityOf(obj)
	if !ok {
		id := r.next
		r.next++
		return id
	}
	if id, seen := r.ids[key]; seen {
		return id
	}
	id := r.next
	r.next++
	r.ids[key] = id
	return id
}

// lookup resolves a reference target. Only values whose identity belongs
// to the enumerated live set qualify; everything else renders as a scalar.
// Assignment is lazy, so a reference seen before its target is extracted
// still collapses to the same ID.
func (r *identityRegistry) lookup(v any) (snapshot.ObjID, bool) {
	key, ok := inspect.IdentityOf(v)
	if !ok {
		return 0, false
	}
	if _, member := r.live[key]; !member {
		return 0, false
	}
	if id, seen := r.ids[key]; seen {
		return id, true
	}
	id := r.next
	r.next++
	r.ids[key] = id
	return id, true
}
