// ABOUTME: Tests for the graph data structures and snapshot adapter
// ABOUTME: Validates node storage, root derivation, and reverse edges

package graph

import (
	"testing"

	"github.com/prateek/heapscope/snapshot"
)

func TestMemGraph(t *testing.T) {
	g := NewMemGraph()

	g.AddNode(&Node{ID: 1, TypeName: "root", Size: 10, Refs: []snapshot.ObjID{2}})
	g.AddNode(&Node{ID: 2, TypeName: "child", Size: 20})
	g.SetRoots(Roots{IDs: []snapshot.ObjID{1}})

	n := g.Node(1)
	if n == nil {
		t.Fatal("Expected to retrieve node 1")
	}
	if n.TypeName != "root" {
		t.Errorf("Expected type 'root', got %s", n.TypeName)
	}
	if g.Len() != 2 {
		t.Errorf("Expected 2 nodes, got %d", g.Len())
	}

	count := 0
	g.EachNode(func(*Node) { count++ })
	if count != 2 {
		t.Errorf("Expected to visit 2 nodes, got %d", count)
	}

	roots := g.Roots()
	if len(roots.IDs) != 1 || roots.IDs[0] != 1 {
		t.Errorf("Expected roots [1], got %v", roots.IDs)
	}
}

func snapWith(records ...*snapshot.ObjectRecord) *snapshot.Snapshot {
	s := &snapshot.Snapshot{Objects: map[snapshot.ObjID]*snapshot.ObjectRecord{}}
	for _, rec := range records {
		s.Objects[rec.ID] = rec
	}
	return s
}

func TestFromSnapshot(t *testing.T) {
	s := snapWith(
		&snapshot.ObjectRecord{ID: 1, TypeName: "a", SizeBytes: 10, Refs: []snapshot.ObjID{2, 3}},
		&snapshot.ObjectRecord{ID: 2, TypeName: "b", SizeBytes: 20, Refs: []snapshot.ObjID{3}},
		&snapshot.ObjectRecord{ID: 3, TypeName: "c", SizeBytes: 30},
		&snapshot.ObjectRecord{ID: 4, TypeName: "d", SizeBytes: 40, Refs: []snapshot.ObjID{2}},
	)

	g := FromSnapshot(s)
	if g.Len() != 4 {
		t.Fatalf("Expected 4 nodes, got %d", g.Len())
	}

	// Nodes 1 and 4 are referenced by nobody, so they are the roots.
	roots := g.Roots()
	if len(roots.IDs) != 2 || roots.IDs[0] != 1 || roots.IDs[1] != 4 {
		t.Errorf("Expected roots [1 4], got %v", roots.IDs)
	}
}

func TestFromSnapshotSelfReferenceStaysRoot(t *testing.T) {
	s := snapWith(
		&snapshot.ObjectRecord{ID: 1, TypeName: "self", SizeBytes: 8, Refs: []snapshot.ObjID{1}},
	)

	g := FromSnapshot(s)
	roots := g.Roots()
	if len(roots.IDs) != 1 || roots.IDs[0] != 1 {
		t.Errorf("Expected self-referential node to stay a root, got %v", roots.IDs)
	}
}

func TestFromSnapshotPureCycleHasNoRoots(t *testing.T) {
	s := snapWith(
		&snapshot.ObjectRecord{ID: 1, Refs: []snapshot.ObjID{2}},
		&snapshot.ObjectRecord{ID: 2, Refs: []snapshot.ObjID{1}},
	)

	g := FromSnapshot(s)
	if len(g.Roots().IDs) != 0 {
		t.Errorf("Expected no roots for a pure cycle, got %v", g.Roots().IDs)
	}
}

func TestBuildReverseEdges(t *testing.T) {
	g := NewMemGraph()
	g.AddNode(&Node{ID: 1, Refs: []snapshot.ObjID{2, 3}})
	g.AddNode(&Node{ID: 2, Refs: []snapshot.ObjID{3}})
	g.AddNode(&Node{ID: 3})

	reverse := BuildReverseEdges(g)

	if len(reverse[3]) != 2 {
		t.Errorf("Expected 2 referrers of node 3, got %v", reverse[3])
	}
	if len(reverse[2]) != 1 || reverse[2][0] != 1 {
		t.Errorf("Expected referrers of node 2 to be [1], got %v", reverse[2])
	}
	if len(reverse[1]) != 0 {
		t.Errorf("Expected no referrers of node 1, got %v", reverse[1])
	}
}
